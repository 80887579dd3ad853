package api

import "context"

// Profile is the user record returned by the profile and login endpoints.
// Admin users and customers share the shape; fields a given backend table
// doesn't have simply come back empty.
type Profile struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

// LoginRequest is the credential payload for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the envelope returned by POST /auth/login and
// POST /auth/customer-login. On success both tokens and a profile are set;
// on a well-formed rejection Success is false and Message says why.
// The customer endpoint returns the profile under "customer" rather than
// "user"; Account normalizes that.
type LoginResponse struct {
	Success      bool     `json:"success"`
	Message      string   `json:"message"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	User         *Profile `json:"user"`
	Customer     *Profile `json:"customer"`
}

// Account returns whichever profile field the backend populated.
func (r *LoginResponse) Account() *Profile {
	if r.User != nil {
		return r.User
	}
	return r.Customer
}

// LoginAdmin submits admin credentials.
func (c *Client) LoginAdmin(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LoginCustomer submits customer credentials.
func (c *Client) LoginCustomer(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.post(ctx, "/auth/customer-login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchProfile returns the profile backing the current bearer token.
func (c *Client) FetchProfile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.get(ctx, "/users/profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// RegisterCustomerRequest is the signup payload for POST /customers/register.
type RegisterCustomerRequest struct {
	FullName     string `json:"full_name"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Address      string `json:"address"`
	CustomerType string `json:"customer_type"`
	Biography    string `json:"biography,omitempty"`
}

// RegisterCustomer creates a customer account. Signup does not log the
// customer in; the caller follows up with a customer login.
func (c *Client) RegisterCustomer(ctx context.Context, req RegisterCustomerRequest) error {
	return c.post(ctx, "/customers/register", req, nil)
}
