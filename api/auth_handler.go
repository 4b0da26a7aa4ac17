package api

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/iCreativate/peboli-sub000/models"
	"github.com/iCreativate/peboli-sub000/utils"
)

// SignupRequest represents the payload for user registration
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the payload for user login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest represents the payload for verifying a signup OTP
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SignupHandler registers a new admin account and emails a verification OTP
func SignupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		utils.RespondError(w, http.StatusBadRequest, "Name, Email and Password are required")
		return
	}

	collection := utils.GetCollection("users")
	if collection == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "User store is not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&existing)
	if err == nil {
		utils.RespondError(w, http.StatusConflict, "User with this email already exists")
		return
	} else if err != mongo.ErrNoDocuments {
		logrus.WithError(err).Error("Database error checking user")
		utils.RespondError(w, http.StatusInternalServerError, "Database error checking user")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	otp := generateOTP()

	user := models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Status:    "pending",
		OTP:       otp,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := collection.InsertOne(ctx, user); err != nil {
		logrus.WithError(err).Error("Failed to create user")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	// Verification email is best-effort; the OTP stays valid either way
	if err := utils.SendEmail(req.Name, req.Email,
		"Verify your Peboli admin account",
		fmt.Sprintf("Your verification code is %s", otp),
		fmt.Sprintf("<p>Your verification code is <strong>%s</strong></p>", otp),
	); err != nil {
		logrus.WithError(err).Warn("Failed to send verification email")
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]string{
		"message": "Account created, check your email for the verification code",
	})
}

// VerifyOTPHandler activates an account given the emailed OTP
func VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection := utils.GetCollection("users")
	if collection == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "User store is not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusNotFound, "User not found")
		return
	}
	if user.OTP == "" || user.OTP != req.OTP {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid OTP")
		return
	}

	_, err := collection.UpdateOne(ctx, bson.M{"email": req.Email}, bson.M{
		"$set":   bson.M{"status": "verified", "updated_at": time.Now()},
		"$unset": bson.M{"otp": ""},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to verify user")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to verify user")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "Account verified"})
}

// LoginHandler checks credentials and issues a JWT
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.RespondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	collection := utils.GetCollection("users")
	if collection == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "User store is not available")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := collection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.Status != "verified" {
		utils.RespondError(w, http.StatusForbidden, "Account not verified")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		utils.RespondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex())
	if err != nil {
		logrus.WithError(err).Error("Failed to generate token")
		utils.RespondError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

func generateOTP() string {
	otp := ""
	for i := 0; i < 6; i++ {
		b := make([]byte, 1)
		rand.Read(b)
		otp += fmt.Sprintf("%d", int(b[0])%10)
	}
	return otp
}
