package admin

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go-storefront/apiclient"
	"go-storefront/models"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RecentOrders is how many orders the dashboard shows
const RecentOrders = 5

var (
	// ErrNoAdminSession is returned when an admin call is made without a stored token
	ErrNoAdminSession = errors.New("admin session required")
	// ErrNoToken is returned when the backend accepts a login but issues no token
	ErrNoToken = errors.New("login response carried no token")
)

// API is the back-office surface of the commerce API
type API interface {
	AdminLogin(ctx context.Context, creds models.AdminCredentials) (models.AdminLoginResult, error)
	AdminStats(ctx context.Context, token string) (models.AdminStats, error)
	AdminOrders(ctx context.Context, token string) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, token, orderID string, status models.OrderStatus) (models.Order, error)
	ListProducts(ctx context.Context, q apiclient.ProductQuery) ([]models.Product, error)
	CreateProduct(ctx context.Context, token string, in models.ProductInput) (models.Product, error)
	UpdateProduct(ctx context.Context, token, id string, in models.ProductInput) (models.Product, error)
	DeleteProduct(ctx context.Context, token, id string) error
}

// Service runs back-office flows. Every backend call carries the stored admin
// token, which the backend verifies.
type Service struct {
	api API
	log zerolog.Logger
}

func NewService(api API, log zerolog.Logger) *Service {
	return &Service{api: api, log: log.With().Str("component", "admin").Logger()}
}

func token(ctx context.Context, sess *session.Session) (string, error) {
	t := sess.AdminToken(ctx)
	if t == "" {
		return "", ErrNoAdminSession
	}
	return t, nil
}

// Login exchanges credentials for an admin token and stores it with the profile
func (s *Service) Login(ctx context.Context, sess *session.Session, creds models.AdminCredentials) (models.AdminUser, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	errs := utils.FieldErrors{}
	if creds.Username == "" {
		errs["username"] = "Username is required"
	}
	if creds.Password == "" {
		errs["password"] = "Password is required"
	}
	if err := errs.Err("Please enter your username and password"); err != nil {
		return models.AdminUser{}, err
	}

	res, err := s.api.AdminLogin(ctx, creds)
	if err != nil {
		s.log.Info().Err(err).Str("username", creds.Username).Msg("admin login refused")
		return models.AdminUser{}, err
	}
	if res.Token == "" {
		return models.AdminUser{}, ErrNoToken
	}
	if err := sess.SetAdmin(ctx, res.Token, res.Admin); err != nil {
		return models.AdminUser{}, err
	}

	s.log.Info().Str("username", creds.Username).Msg("admin logged in")
	return res.Admin, nil
}

// Logout drops the stored admin token and profile
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	return sess.ClearAdmin(ctx)
}

// Dashboard loads stats and orders concurrently
func (s *Service) Dashboard(ctx context.Context, sess *session.Session) (models.Dashboard, error) {
	tok, err := token(ctx, sess)
	if err != nil {
		return models.Dashboard{}, err
	}

	var (
		stats  models.AdminStats
		orders []models.Order
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.api.AdminStats(gctx, tok)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = s.api.AdminOrders(gctx, tok)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("loading dashboard failed")
		return models.Dashboard{}, err
	}

	d := models.Dashboard{Stats: stats, RecentOrders: Recent(orders, RecentOrders)}
	if u, ok := sess.AdminUser(ctx); ok {
		d.Admin = &u
	}
	return d, nil
}

// Recent returns up to n orders, newest first
func Recent(orders []models.Order, n int) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// Products lists the catalog filtered locally by title and category
func (s *Service) Products(ctx context.Context, sess *session.Session, search, category string) ([]models.Product, error) {
	if _, err := token(ctx, sess); err != nil {
		return nil, err
	}
	products, err := s.api.ListProducts(ctx, apiclient.ProductQuery{})
	if err != nil {
		return nil, err
	}
	return FilterProducts(products, search, category), nil
}

// CreateProduct validates and submits a new product
func (s *Service) CreateProduct(ctx context.Context, sess *session.Session, in models.ProductInput) (models.Product, error) {
	tok, err := token(ctx, sess)
	if err != nil {
		return models.Product{}, err
	}
	if err := ValidateProduct(in).Err("Please fix the highlighted fields"); err != nil {
		return models.Product{}, err
	}

	p, err := s.api.CreateProduct(ctx, tok, in)
	if err != nil {
		return models.Product{}, err
	}
	s.log.Info().Str("product_id", p.ID).Str("title", p.Title).Msg("product created")
	return p, nil
}

// UpdateProduct validates and submits a product edit
func (s *Service) UpdateProduct(ctx context.Context, sess *session.Session, id string, in models.ProductInput) (models.Product, error) {
	tok, err := token(ctx, sess)
	if err != nil {
		return models.Product{}, err
	}
	if !utils.IsObjectID(id) {
		return models.Product{}, apiclient.ErrInvalidProductID
	}
	if err := ValidateProduct(in).Err("Please fix the highlighted fields"); err != nil {
		return models.Product{}, err
	}

	p, err := s.api.UpdateProduct(ctx, tok, id, in)
	if err != nil {
		return models.Product{}, err
	}
	s.log.Info().Str("product_id", id).Msg("product updated")
	return p, nil
}

// DeleteProduct removes a product
func (s *Service) DeleteProduct(ctx context.Context, sess *session.Session, id string) error {
	tok, err := token(ctx, sess)
	if err != nil {
		return err
	}
	if !utils.IsObjectID(id) {
		return apiclient.ErrInvalidProductID
	}

	if err := s.api.DeleteProduct(ctx, tok, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// Orders lists every order
func (s *Service) Orders(ctx context.Context, sess *session.Session) ([]models.Order, error) {
	tok, err := token(ctx, sess)
	if err != nil {
		return nil, err
	}
	return s.api.AdminOrders(ctx, tok)
}

// UpdateOrderStatus moves an order to status. Unknown statuses never reach the backend.
func (s *Service) UpdateOrderStatus(ctx context.Context, sess *session.Session, orderID string, status models.OrderStatus) (models.Order, error) {
	tok, err := token(ctx, sess)
	if err != nil {
		return models.Order{}, err
	}
	if !status.Valid() {
		return models.Order{}, utils.Invalid("Invalid order status")
	}
	if strings.TrimSpace(orderID) == "" {
		return models.Order{}, utils.Invalid("Missing order")
	}

	order, err := s.api.UpdateOrderStatus(ctx, tok, orderID, status)
	if err != nil {
		return models.Order{}, err
	}
	s.log.Info().Str("order_id", orderID).Str("status", string(status)).Msg("order status updated")
	return order, nil
}
