package apperrors

import (
	"bytes"
	"text/template"

	"golang.org/x/text/language"
)

// Supported locales. The first entry is the fallback.
const (
	LocaleEN = "en"
	LocalePL = "pl"
)

var supportedTags = []language.Tag{language.English, language.Polish}

var localeMatcher = language.NewMatcher(supportedTags)

// NegotiateLocale picks a supported locale from an Accept-Language header
// value, falling back to English.
func NegotiateLocale(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LocaleEN
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LocaleEN
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return LocaleEN
	}
	base, _ := supportedTags[index].Base()
	return base.String()
}

var catalogs = map[string]map[Code]string{
	LocaleEN: {
		CodeUnauthorized:   "Authentication is required",
		CodeForbidden:      "You are not allowed to perform this action",
		CodeInvalidRequest: "The request is malformed",
		CodeValidation:     "The request did not pass validation",
		CodeNotFound:       "The requested resource was not found",
		CodeInternal:       "An unexpected error occurred",
		CodeRateLimited:    "Too many requests, try again in {{.RetryAfter}} seconds",

		CodeClientRoleRequired:  "Only clients can perform this action",
		CodeArtisanRoleRequired: "Only artisans can perform this action",

		CodeProjectNotFound:         "Project not found",
		CodeProjectForbidden:        "Only the project owner can perform this action",
		CodeInvalidStatusTransition: "Cannot change project status from {{.From}} to {{.To}}",
		CodeProjectNotOpen:          "Project is not open",
		CodeProjectStatusConflict:   "Project status was changed by another request",

		CodeImageNotFound:    "Generated image not found",
		CodeImageForbidden:   "The generated image belongs to another user",
		CodeImageAlreadyUsed: "The generated image is already used by another project",

		CodeProposalNotFound:             "Proposal not found for this project",
		CodeProposalRoleRequired:         "Only artisans can submit proposals",
		CodeProjectNotAcceptingProposals: "This project is not accepting proposals",
		CodeProposalAlreadyExists:        "You have already submitted a proposal for this project",

		CodeProfileNotFound:        "Artisan profile not found",
		CodeNIPAlreadyExists:       "This NIP is already registered to another artisan",
		CodeMinImagesRequired:      "A public profile must keep at least {{.Min}} portfolio images",
		CodePortfolioImageNotFound: "Portfolio image not found",

		CodeInvalidFile:  "The uploaded file is invalid: {{.Reason}}",
		CodeUploadFailed: "The file could not be uploaded",

		CodeProjectNotCompleted: "Reviews can only be added to completed projects",
		CodeReviewForbidden:     "Only project participants can review",
		CodeReviewAlreadyExists: "You have already reviewed this project",

		CodeAIInvalidResponse: "The image generator returned an invalid response",
		CodeAIUpstreamError:   "The image generator failed",
		CodeAIUnavailable:     "The image generator is unavailable",
		CodeAITimeout:         "The image generator timed out",
	},
	LocalePL: {
		CodeUnauthorized:   "Wymagane jest zalogowanie",
		CodeForbidden:      "Brak uprawnień do wykonania tej operacji",
		CodeInvalidRequest: "Nieprawidłowe żądanie",
		CodeValidation:     "Żądanie nie przeszło walidacji",
		CodeNotFound:       "Nie znaleziono zasobu",
		CodeInternal:       "Wystąpił nieoczekiwany błąd",
		CodeRateLimited:    "Zbyt wiele żądań, spróbuj ponownie za {{.RetryAfter}} s",

		CodeClientRoleRequired:  "Tylko klienci mogą wykonać tę operację",
		CodeArtisanRoleRequired: "Tylko rzemieślnicy mogą wykonać tę operację",

		CodeProjectNotFound:         "Nie znaleziono projektu",
		CodeProjectForbidden:        "Tylko właściciel projektu może wykonać tę operację",
		CodeInvalidStatusTransition: "Nie można zmienić statusu projektu z {{.From}} na {{.To}}",
		CodeProjectNotOpen:          "Projekt nie jest otwarty",
		CodeProjectStatusConflict:   "Status projektu został zmieniony przez inne żądanie",

		CodeImageNotFound:    "Nie znaleziono wygenerowanego obrazu",
		CodeImageForbidden:   "Wygenerowany obraz należy do innego użytkownika",
		CodeImageAlreadyUsed: "Wygenerowany obraz jest już użyty w innym projekcie",

		CodeProposalNotFound:             "Nie znaleziono oferty dla tego projektu",
		CodeProposalRoleRequired:         "Tylko rzemieślnicy mogą składać oferty",
		CodeProjectNotAcceptingProposals: "Ten projekt nie przyjmuje ofert",
		CodeProposalAlreadyExists:        "Złożyłeś już ofertę do tego projektu",

		CodeProfileNotFound:        "Nie znaleziono profilu rzemieślnika",
		CodeNIPAlreadyExists:       "Ten NIP jest już przypisany do innego rzemieślnika",
		CodeMinImagesRequired:      "Publiczny profil musi zawierać co najmniej {{.Min}} zdjęć portfolio",
		CodePortfolioImageNotFound: "Nie znaleziono zdjęcia portfolio",

		CodeInvalidFile:  "Nieprawidłowy plik: {{.Reason}}",
		CodeUploadFailed: "Nie udało się przesłać pliku",

		CodeProjectNotCompleted: "Opinie można dodawać tylko do zakończonych projektów",
		CodeReviewForbidden:     "Tylko uczestnicy projektu mogą wystawić opinię",
		CodeReviewAlreadyExists: "Wystawiłeś już opinię do tego projektu",

		CodeAIInvalidResponse: "Generator obrazów zwrócił nieprawidłową odpowiedź",
		CodeAIUpstreamError:   "Generator obrazów zwrócił błąd",
		CodeAIUnavailable:     "Generator obrazów jest niedostępny",
		CodeAITimeout:         "Przekroczono czas oczekiwania na generator obrazów",
	},
}

// Localize renders the user-facing message for code in locale, filling
// template placeholders from metadata. Unknown locales fall back to English
// and unknown codes to the generic internal message.
func Localize(code Code, locale string, metadata map[string]string) string {
	catalog, ok := catalogs[locale]
	if !ok {
		catalog = catalogs[LocaleEN]
	}
	message, ok := catalog[code]
	if !ok {
		message = catalog[CodeInternal]
	}

	tmpl, err := template.New(string(code)).Option("missingkey=zero").Parse(message)
	if err != nil {
		return message
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, metadata); err != nil {
		return message
	}
	return buf.String()
}
