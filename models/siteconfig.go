package models

// SiteConfig is the singleton set of site-wide presentation settings. It is
// fetched on every page load and overwritten wholesale on save; there is no
// partial-field patch.
type SiteConfig struct {
	MainTitle      string `json:"mainTitle"`
	SubTitle       string `json:"subTitle"`
	MainImageURL   string `json:"mainImageUrl"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	NavColor       string `json:"navColor"`
}

// ContactRequest is a visitor-submitted contact message.
type ContactRequest struct {
	SenderName string `json:"senderName"`
	Email      string `json:"email"`
	Subject    string `json:"subject"`
	Message    string `json:"message"`
}
