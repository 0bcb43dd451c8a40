package models

// Credentials is the login form
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up form
type Registration struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
}

// ProviderSignIn carries the ID token the provider's sign-in button returned
type ProviderSignIn struct {
	Credential string `json:"credential"`
}

// ProviderProfile is what the identity provider tells us about a shopper
type ProviderProfile struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider"`
}

// User represents a shopper as returned by the auth endpoints
type User struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image,omitempty"`
}

// AuthResponse is the body returned by /auth/login, /auth/register and /auth/google
type AuthResponse struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
}

// AdminCredentials is the back-office login form
type AdminCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminUser is the admin profile returned alongside an admin token
type AdminUser struct {
	ID       string `json:"_id,omitempty"`
	Username string `json:"username,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
}

// AdminLoginResult is the data of POST /admin/login
type AdminLoginResult struct {
	Token string    `json:"token"`
	Admin AdminUser `json:"admin"`
}

// Me describes the active shopper for the navigation bar
type Me struct {
	Authenticated bool   `json:"authenticated"`
	Email         string `json:"email,omitempty"`
	Source        string `json:"source,omitempty"`
	CartCount     int    `json:"cartCount"`
	IsAdmin       bool   `json:"isAdmin"`
}
