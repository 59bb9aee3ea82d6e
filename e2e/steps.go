package e2e

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cucumber/godog"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Background steps
	ctx.Step(`^the portal is running$`, tc.portalIsRunning)

	// Registration steps
	ctx.Step(`^I register a creator with display name "([^"]*)" and email "([^"]*)"$`, tc.registerCreator)
	ctx.Step(`^I register a creator with email "([^"]*)" without agreeing to terms$`, tc.registerWithoutTerms)
	ctx.Step(`^I save the application id$`, tc.saveApplicationID)

	// Admin session and review steps
	ctx.Step(`^I log in as "([^"]*)" with password "([^"]*)"$`, tc.logIn)
	ctx.Step(`^I save the session token$`, tc.saveSessionToken)
	ctx.Step(`^I start review of the saved application$`, tc.startReview)
	ctx.Step(`^I approve the saved application at level "([^"]*)"$`, tc.approveApplication)
	ctx.Step(`^I reject the saved application with reason "([^"]*)"$`, tc.rejectApplication)
	ctx.Step(`^I save the assigned registry id$`, tc.saveRegistryID)

	// Lookup steps
	ctx.Step(`^I search the public registry for "([^"]*)"$`, tc.searchRegistry)
	ctx.Step(`^I search the public registry for the saved registry id in lowercase$`, tc.searchSavedRegistryIDLowercase)

	// Request steps
	ctx.Step(`^I GET "([^"]*)" without authorization$`, tc.getWithoutAuth)
	ctx.Step(`^I GET "([^"]*)" with the session token$`, tc.getWithSession)

	// Assertion steps
	ctx.Step(`^the response status should be (\d+)$`, tc.responseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, tc.responseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, tc.responseShouldNotContain)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, tc.responseFieldShouldEqual)
}

func (tc *TestContext) portalIsRunning(ctx context.Context) error {
	return nil
}

func (tc *TestContext) registerCreator(ctx context.Context, displayName, email string) error {
	return tc.POST("/register", registrationBody(displayName, email, true))
}

func (tc *TestContext) registerWithoutTerms(ctx context.Context, email string) error {
	return tc.POST("/register", registrationBody("NoConsent", email, false))
}

func registrationBody(displayName, email string, termsAgreed bool) map[string]interface{} {
	return map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"firstName":  "Aminata",
			"lastName":   "Sesay",
			"email":      email,
			"phone":       "+23276123456",
			"nationalId":  "SL-E2E-0001",
			"dateOfBirth": "1991-03-08",
			"address":     "14 Lightfoot Boston Street, Freetown",
		},
		"creatorInfo": map[string]interface{}{
			"displayName":     displayName,
			"bio":             "End to end scenario creator",
			"contentType":     "technology",
			"primaryPlatform": "youtube",
		},
		"verification": map[string]interface{}{
			"termsAgreed":    termsAgreed,
			"ipPolicyAgreed": true,
		},
	}
}

func (tc *TestContext) saveApplicationID(ctx context.Context) error {
	value, err := tc.GetResponseField("application_id")
	if err != nil {
		return err
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return fmt.Errorf("application_id is not a string: %v", value)
	}
	tc.ApplicationID = id
	return nil
}

func (tc *TestContext) logIn(ctx context.Context, email, password string) error {
	return tc.POST("/auth/login", map[string]interface{}{
		"email":    email,
		"password": password,
	})
}

func (tc *TestContext) saveSessionToken(ctx context.Context) error {
	value, err := tc.GetResponseField("token")
	if err != nil {
		return err
	}
	token, ok := value.(string)
	if !ok || token == "" {
		return fmt.Errorf("token is not a string: %v", value)
	}
	tc.SessionToken = token
	return nil
}

func (tc *TestContext) startReview(ctx context.Context) error {
	path := fmt.Sprintf("/admin/applications/%s/review", tc.ApplicationID)
	return tc.POSTWithHeaders(path, map[string]interface{}{}, tc.AuthHeaders())
}

func (tc *TestContext) approveApplication(ctx context.Context, level string) error {
	path := fmt.Sprintf("/admin/applications/%s/approve", tc.ApplicationID)
	return tc.POSTWithHeaders(path, map[string]interface{}{
		"verification_level": level,
	}, tc.AuthHeaders())
}

func (tc *TestContext) rejectApplication(ctx context.Context, reason string) error {
	path := fmt.Sprintf("/admin/applications/%s/reject", tc.ApplicationID)
	return tc.POSTWithHeaders(path, map[string]interface{}{
		"reason": reason,
	}, tc.AuthHeaders())
}

func (tc *TestContext) saveRegistryID(ctx context.Context) error {
	value, err := tc.GetResponseField("registry_id")
	if err != nil {
		return err
	}
	id, ok := value.(string)
	if !ok || id == "" {
		return fmt.Errorf("registry_id is not a string: %v", value)
	}
	tc.RegistryID = id
	return nil
}

func (tc *TestContext) searchRegistry(ctx context.Context, query string) error {
	return tc.GET("/verify?q="+url.QueryEscape(query), nil)
}

func (tc *TestContext) searchSavedRegistryIDLowercase(ctx context.Context) error {
	if tc.RegistryID == "" {
		return fmt.Errorf("no registry id saved")
	}
	return tc.searchRegistry(ctx, strings.ToLower(tc.RegistryID))
}

func (tc *TestContext) getWithoutAuth(ctx context.Context, path string) error {
	return tc.GET(path, nil)
}

func (tc *TestContext) getWithSession(ctx context.Context, path string) error {
	return tc.GET(path, tc.AuthHeaders())
}

func (tc *TestContext) responseStatusShouldBe(ctx context.Context, expected int) error {
	if tc.GetLastResponseStatus() != expected {
		return fmt.Errorf("expected status %d, got %d: %s",
			expected, tc.GetLastResponseStatus(), string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldContain(ctx context.Context, text string) error {
	if !tc.ResponseContains(text) {
		return fmt.Errorf("response does not contain %q: %s", text, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseShouldNotContain(ctx context.Context, text string) error {
	if tc.ResponseContains(text) {
		return fmt.Errorf("response unexpectedly contains %q: %s", text, string(tc.LastResponseBody))
	}
	return nil
}

func (tc *TestContext) responseFieldShouldEqual(ctx context.Context, field, expected string) error {
	value, err := tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprintf("%v", value) != expected {
		return fmt.Errorf("expected field %s to equal %q, got %v", field, expected, value)
	}
	return nil
}
