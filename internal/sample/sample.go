// Package sample holds the canned inputs and canned result used by
// sample mode, so the tool can be demonstrated without an API key or
// a real submission.
package sample

import "github.com/lyzr-apps/storecheck/internal/models"

// Canned form field values substituted for empty fields in sample mode.
const (
	AppName     = "PhotoSync Pro"
	Subtitle    = "Photo Backup & Sync - Cloud Storage Photo Manager"
	Keywords    = "photo, backup, sync, cloud, storage, gallery, share"
	AgeRating   = "4+"
	Description = "A photo synchronization app that backs up your photos to the cloud, with social sharing features and a premium subscription for unlimited storage."

	CodeSnippet = `import UIKit
import CoreLocation

class LocationManager: NSObject, CLLocationManagerDelegate {
    let manager = CLLocationManager()
    func startTracking() {
        manager.requestWhenInUseAuthorization()
        manager.startUpdatingLocation()
    }
}`
)

// Result returns the canned analysis used when sample mode runs
// without calling the agent. Fresh copy per call so callers can
// normalize it without sharing state.
func Result() *models.AnalysisResult {
	return &models.AnalysisResult{
		ComplianceScore: 72,
		RiskSummary:     models.RiskSummary{High: 3, Medium: 5, Low: 2},
		Categories: []models.Category{
			{
				CategoryName:    "Privacy & Data Collection",
				CategorySummary: "Several privacy-related issues found. The app collects user data without adequate disclosure in the privacy policy. Location data is accessed without clear justification.",
				Violations: []models.Violation{
					{
						Title:              "Missing Privacy Nutrition Label",
						Severity:           models.SeverityHigh,
						GuidelineReference: "Guideline 5.1.1",
						Description:        "App collects email and location data but does not declare these data types in the App Privacy nutrition label on App Store Connect.",
						AffectedCode:       "CLLocationManager.requestWhenInUseAuthorization()",
						SuggestedFix:       "Update the App Privacy section in App Store Connect to declare Location and Contact Info data collection. Provide a clear purpose string in Info.plist for NSLocationWhenInUseUsageDescription.",
					},
					{
						Title:              "Insufficient Data Deletion Mechanism",
						Severity:           models.SeverityMedium,
						GuidelineReference: "Guideline 5.1.1(v)",
						Description:        "No account deletion or data erasure option found in the app settings or described in the submission.",
						AffectedCode:       "N/A - Missing implementation",
						SuggestedFix:       "Implement an in-app account deletion flow that allows users to request full data erasure, as required by App Review guidelines since 2022.",
					},
				},
			},
			{
				CategoryName:    "UI/UX & Technical",
				CategorySummary: "Minor technical compliance issues detected. The app meets most UI standards but has some edge cases that could trigger review rejection.",
				Violations: []models.Violation{
					{
						Title:              "Non-Standard Back Navigation",
						Severity:           models.SeverityLow,
						GuidelineReference: "Guideline 4.0 - Design",
						Description:        "Custom back button does not follow iOS HIG navigation patterns. The swipe-to-go-back gesture is disabled on some screens.",
						AffectedCode:       "navigationController?.interactivePopGestureRecognizer?.isEnabled = false",
						SuggestedFix:       "Re-enable the interactive pop gesture recognizer. If custom back navigation is needed, ensure it supplements rather than replaces the standard gesture.",
					},
					{
						Title:              "Missing iPad Layout Adaptation",
						Severity:           models.SeverityMedium,
						GuidelineReference: "Guideline 2.4.1",
						Description:        "App does not adapt its layout for iPad screen sizes. Content appears stretched on larger displays.",
						AffectedCode:       "UIDevice.current.userInterfaceIdiom check missing",
						SuggestedFix:       "Implement adaptive layouts using Size Classes and Auto Layout constraints that respond to different screen sizes. Test on iPad simulator.",
					},
				},
			},
			{
				CategoryName:    "Content & Monetization",
				CategorySummary: "Monetization practices are mostly compliant. One issue found with subscription terminology.",
				Violations: []models.Violation{
					{
						Title:              "Unclear Subscription Terms",
						Severity:           models.SeverityHigh,
						GuidelineReference: "Guideline 3.1.2(a)",
						Description:        "Subscription pricing page does not clearly state the renewal period and cancellation terms before the purchase button.",
						AffectedCode:       "SubscriptionView.swift - purchaseButton action",
						SuggestedFix:       "Display the subscription price, renewal period, and a link to Apple subscription management settings directly on the purchase screen, before the user taps Subscribe.",
					},
				},
			},
			{
				CategoryName:    "Metadata & Marketing",
				CategorySummary: "App metadata has issues that could delay review. Keywords and screenshots need attention.",
				Violations: []models.Violation{
					{
						Title:              "Keyword Stuffing in Subtitle",
						Severity:           models.SeverityMedium,
						GuidelineReference: "Guideline 2.3.7",
						Description:        "App subtitle contains repeated keywords that also appear in the app name, which Apple considers keyword stuffing.",
						AffectedCode:       "N/A - App Store Connect metadata",
						SuggestedFix:       "Revise the subtitle to use unique, descriptive terms that do not duplicate the app name. Focus on communicating the app value proposition.",
					},
					{
						Title:              "Screenshots Show Non-iOS UI Elements",
						Severity:           models.SeverityHigh,
						GuidelineReference: "Guideline 2.3.1",
						Description:        "Marketing screenshots include Android-style navigation bars and non-Apple device frames.",
						AffectedCode:       "N/A - Marketing assets",
						SuggestedFix:       "Replace all screenshots with actual iOS device captures. Use Apple-approved device frames and ensure all UI elements shown are native iOS components.",
					},
					{
						Title:              "Misleading Performance Claims",
						Severity:           models.SeverityMedium,
						GuidelineReference: "Guideline 2.3.7",
						Description:        `App description claims "fastest app in the category" without verifiable benchmarks.`,
						AffectedCode:       "N/A - App Store description text",
						SuggestedFix:       "Remove unsubstantiated performance claims or provide verifiable data. Use factual descriptions of app features instead.",
					},
				},
			},
		},
		OverallAssessment: `## Compliance Overview

The app has **several critical issues** that are likely to result in App Store rejection if not addressed before submission.

### Key Concerns
- **Privacy compliance** is the most urgent area, with missing nutrition labels and no data deletion mechanism
- **Subscription transparency** needs immediate attention to meet Apple's updated requirements
- **Marketing materials** contain elements that will trigger automatic rejection

### Positive Aspects
- Core app functionality appears to meet technical standards
- No obvious crash risks or performance issues detected in the code snippets
- In-app purchase implementation follows StoreKit best practices

### Recommendation
Address the **3 high-severity issues** before submitting for review. The medium and low severity items should also be resolved but are less likely to cause immediate rejection.`,
		PriorityFixes: []models.PriorityFix{
			{Priority: 1, Title: "Add Privacy Nutrition Labels", Category: "Privacy & Data Collection", Action: "Declare all collected data types in App Store Connect Privacy section and add purpose strings to Info.plist"},
			{Priority: 2, Title: "Fix Subscription Disclosure", Category: "Content & Monetization", Action: "Add clear pricing, renewal terms, and cancellation instructions on the subscription purchase screen"},
			{Priority: 3, Title: "Replace Marketing Screenshots", Category: "Metadata & Marketing", Action: "Capture new screenshots from iOS devices with native UI elements and Apple-approved device frames"},
			{Priority: 4, Title: "Implement Account Deletion", Category: "Privacy & Data Collection", Action: "Build an in-app account deletion flow and document data erasure procedures"},
			{Priority: 5, Title: "Fix iPad Layout", Category: "UI/UX & Technical", Action: "Implement adaptive layouts using Size Classes for iPad compatibility"},
		},
	}
}
