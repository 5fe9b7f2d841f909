package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/models"
)

type AdminLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AdminLogin signs an admin in. Failures are categorized so the client can
// show a specific message: unknown email, wrong password, or a generic
// error for everything else.
func AdminLogin(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email == "" || strings.TrimSpace(req.Password) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err := db.Collection("admins").FindOne(ctx, bson.M{"email": email}).Decode(&admin)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "No user found with this email.",
				"code":  "user-not-found",
			})
			return
		}
		if err != nil {
			log.Println("AdminLogin find error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Login failed.",
				"code":  "other",
			})
			return
		}

		if err := bcrypt.CompareHashAndPassword(
			[]byte(admin.PasswordHash),
			[]byte(req.Password),
		); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Incorrect password.",
				"code":  "wrong-password",
			})
			return
		}

		claims := jwt.MapClaims{
			"sub":   admin.ID.Hex(),
			"role":  "admin",
			"email": admin.Email,
			"exp":   time.Now().Add(accessTTL).Unix(),
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := token.SignedString([]byte(jwtSecret))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token": signed,
		})
	}
}

// EnsureBootstrapAdmin upserts the configured admin account at startup so a
// fresh deployment has a way into the panel.
func EnsureBootstrapAdmin(db *mongo.Database, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Println("EnsureBootstrapAdmin: no bootstrap admin configured, skipping")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := db.Collection("admins").CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = db.Collection("admins").InsertOne(ctx, models.Admin{
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return err
	}

	log.Println("EnsureBootstrapAdmin: admin account created for", email)
	return nil
}
