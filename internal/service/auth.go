package service

import (
	"context"
	"fmt"
	"time"

	"github.com/finanzas-app/finanzas-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Default categories seeded for every new user.
var defaultIncomeCategories = []models.Category{
	{Name: "Sueldo", Emoji: "💰"}, {Name: "Freelance", Emoji: "💻"},
	{Name: "Inversiones", Emoji: "📈"}, {Name: "Venta", Emoji: "🛒"},
	{Name: "Regalo", Emoji: "🎁"}, {Name: "Bono", Emoji: "🎉"},
	{Name: "Otros", Emoji: "💵"},
}

var defaultExpenseCategories = []models.Category{
	{Name: "Comida", Emoji: "🍽️"}, {Name: "Transporte", Emoji: "🚗"},
	{Name: "Servicios", Emoji: "💡"}, {Name: "Entretenimiento", Emoji: "🎬"},
	{Name: "Salud", Emoji: "🏥"}, {Name: "Educación", Emoji: "📚"},
	{Name: "Ropa", Emoji: "👕"}, {Name: "Casa", Emoji: "🏠"},
	{Name: "Tecnología", Emoji: "📱"}, {Name: "Otros", Emoji: "💸"},
}

// Register creates a new user with hashed password and seeds the
// default category set.
func (s *Service) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if existing, err := s.store.FindUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:       username,
		Email:          email,
		HashedPassword: string(hashedPassword),
	}

	err = s.store.WithTx(ctx, func(tx Store) error {
		if err := tx.CreateUser(ctx, user); err != nil {
			return err
		}
		for _, c := range defaultIncomeCategories {
			category := c
			category.UserID = user.ID
			category.Type = models.CategoryIncome
			if err := tx.CreateCategory(ctx, &category); err != nil {
				return err
			}
		}
		for _, c := range defaultExpenseCategories {
			category := c
			category.UserID = user.ID
			category.Type = models.CategoryExpense
			if err := tx.CreateCategory(ctx, &category); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a JWT token
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%d", user.ID),
		ExpiresAt: jwt.NewNumericDate(s.Now().Add(24 * time.Hour)),
	})
	tokenString, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return tokenString, nil
}
