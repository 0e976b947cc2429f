package domain

// LoginCredentials is the body of a login request. Both fields may be empty
// while the user is typing; they are only required at submission time.
type LoginCredentials struct {
	Email    string `json:"email" form:"email" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

// RegistrationDetails is the body of a registration request.
// Password and ConfirmPassword are not compared here; see flow.WithConfirmPrecheck.
type RegistrationDetails struct {
	Username        string `json:"username" form:"username" validate:"required"`
	Email           string `json:"email" form:"email" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" form:"confirm_password" validate:"required"`
}

// MessageBody is the JSON body AuthService answers with on both success and
// failure. Msg is nil when the field was absent from the response.
type MessageBody struct {
	Msg *string `json:"msg"`
}

// Message returns the msg field and whether it was present.
func (b MessageBody) Message() (string, bool) {
	if b.Msg == nil {
		return "", false
	}
	return *b.Msg, true
}
