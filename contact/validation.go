package contact

import "regexp"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Fields is the sanitized form as submitted.
type Fields struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CareerStage string
	Sport       string
	Message     string
	Referral    string
	// Website is the honeypot input, hidden from people.
	Website string
}

// SanitizeFields picks the known form fields out of a decoded body.
func SanitizeFields(body map[string]any) Fields {
	return Fields{
		FirstName:   CleanText(body["firstName"]),
		LastName:    CleanText(body["lastName"]),
		Email:       CleanText(body["email"]),
		Phone:       CleanText(body["phone"]),
		CareerStage: CleanText(body["careerStage"]),
		Sport:       CleanText(body["sport"]),
		Message:     CleanText(body["message"]),
		Referral:    CleanText(body["referral"]),
		Website:     CleanText(body["website"]),
	}
}

// Validate checks the honeypot, then required fields, then email shape.
func Validate(f Fields) error {
	if f.Website != "" {
		return newErrSubmissionRejected()
	}
	if f.FirstName == "" || f.LastName == "" || f.Email == "" {
		return newErrRequiredFieldsMissing()
	}
	if !emailRegex.MatchString(f.Email) {
		return newErrInvalidEmail()
	}
	return nil
}
