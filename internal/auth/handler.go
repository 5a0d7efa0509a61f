package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/lgznml/WorkoutTracker/internal/telemetry/metrics"
	"github.com/lgznml/WorkoutTracker/internal/telemetry/tracing"
	"github.com/lgznml/WorkoutTracker/pkg"
)

// AuthTokenHeader carries the session token on authenticated requests.
const AuthTokenHeader = "X-WT-TOKEN"

const minPasswordLength = 6

type usersRepo interface {
	Get(ctx context.Context, username string) (*User, error)
	Add(ctx context.Context, user User) error
	UpdatePassword(ctx context.Context, username, passwordHash string) error
}

type devicesRepo interface {
	Get(ctx context.Context, deviceID string) (*DeviceMapping, error)
	Upsert(ctx context.Context, mapping DeviceMapping) error
	SetAutoLogin(ctx context.Context, deviceID string, enabled bool) error
}

type loginService interface {
	Login(ctx context.Context, username string, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type autoLogin interface {
	Resolve(ctx context.Context, deviceID string, now time.Time) (string, error)
	Forget(deviceID string)
}

type Handler struct {
	users          usersRepo
	devices        devicesRepo
	authService    loginService
	autoLogin      autoLogin
	metricsManager *metrics.Manager
}

func NewHandler(
	users usersRepo,
	devices devicesRepo,
	authService loginService,
	autoLoginResolver autoLogin,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		users:          users,
		devices:        devices,
		authService:    authService,
		autoLogin:      autoLoginResolver,
		metricsManager: metricsManager,
	}
}

// SetupRoutes registers the identity endpoints on the given (sub)router.
// Rate limiting for this subrouter is applied by the server setup.
func (handler *Handler) SetupRoutes(loginRouter *mux.Router) {
	loginRouter.HandleFunc("/login", handler.handleLogin).Methods("POST", "OPTIONS").Name("login")
	loginRouter.HandleFunc("/autologin", handler.handleAutoLogin).Methods("POST", "OPTIONS").Name("autologin")
	loginRouter.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
	loginRouter.HandleFunc("/logout", handler.handleLogout).Methods("GET", "OPTIONS").Name("logout")
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	DeviceID   string `json:"deviceId"`
	RememberMe bool   `json:"rememberMe"`
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Username:   r.Form.Get("username"),
			Password:   r.Form.Get("password"),
			DeviceID:   r.Form.Get("deviceId"),
			RememberMe: r.Form.Get("rememberMe") == "true",
		}
	}

	if loginReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.users.Get(ctx, loginReq.Username)
	if err != nil {
		// same generic rejection for unknown username and backend trouble,
		// usernames must not be enumerable through the login form
		if !errors.Is(err, ErrUserNotFound) {
			log.Errorf("login, get user: %s", err)
		}
		log.Tracef("[username] failed login attempt for user: %s", loginReq.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	if !handler.verifyPassword(ctx, user, loginReq.Password) {
		log.Tracef("[password] failed login attempt for user: %s", loginReq.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.authService.Login(ctx, user.Username, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	if loginReq.RememberMe && loginReq.DeviceID != "" {
		if err := handler.devices.Upsert(ctx, DeviceMapping{
			DeviceID:         loginReq.DeviceID,
			LastUsername:     user.Username,
			LastLoginDate:    time.Now(),
			AutoLoginEnabled: true,
		}); err != nil {
			// remember-me is best effort, the login itself already succeeded
			log.Errorf("login, remember device [%s]: %s", loginReq.DeviceID, err)
		}
		handler.autoLogin.Forget(loginReq.DeviceID)
	}

	handler.metricsManager.CounterLogins.Inc()

	log.Tracef("new login success: %s", user.Username)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token":"%s","username":"%s"}`, token, user.Username))
}

func (handler *Handler) verifyPassword(ctx context.Context, user *User, password string) bool {
	if user.HasHashedPassword() {
		return pkg.CheckPasswordHash(password, user.Password)
	}

	// legacy plaintext entry from the old spreadsheet user table
	if user.Password != password {
		return false
	}

	// one time upgrade to a bcrypt hash, tolerated to fail
	if hash, err := pkg.HashPassword(password); err == nil {
		if err := handler.users.UpdatePassword(ctx, user.Username, hash); err != nil {
			log.Warnf("failed to upgrade legacy password for [%s]: %s", user.Username, err)
		} else {
			log.Warnf("legacy plaintext password upgraded to hash for [%s]", user.Username)
		}
	}

	return true
}

func (handler *Handler) handleAutoLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.autoLogin")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var autoLoginReq struct {
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&autoLoginReq); err != nil {
		log.Tracef("auto login, unmarshal json params: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	username, err := handler.autoLogin.Resolve(ctx, autoLoginReq.DeviceID, time.Now())
	if err != nil {
		log.Tracef("auto login denied for device: %s", autoLoginReq.DeviceID)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	token, err := handler.authService.Login(ctx, username, time.Now())
	if err != nil {
		log.Errorf("auto login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterAutoLogins.Inc()

	log.Tracef("auto login success for device [%s]: %s", autoLoginReq.DeviceID, username)
	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"token":"%s","username":"%s"}`, token, username))
}

type registerRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FullName        string `json:"fullName"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.register")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	var registerReq registerRequest
	if err := json.NewDecoder(r.Body).Decode(&registerReq); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "register failed", http.StatusBadRequest)
		return
	}

	if registerReq.Username == "" {
		http.Error(w, "error, username empty", http.StatusBadRequest)
		return
	}
	if len(registerReq.Password) < minPasswordLength {
		http.Error(w, "error, password too short", http.StatusBadRequest)
		return
	}
	if registerReq.Password != registerReq.ConfirmPassword {
		http.Error(w, "error, passwords do not match", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(registerReq.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	if err := handler.users.Add(ctx, User{
		Username: registerReq.Username,
		Password: passwordHash,
		FullName: registerReq.FullName,
	}); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			http.Error(w, "error, username taken", http.StatusBadRequest)
			return
		}
		log.Errorf("register, add user: %s", err)
		http.Error(w, "register failed", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterRegistrations.Inc()

	log.Tracef("new user registered: %s", registerReq.Username)
	pkg.WriteResponse(w, pkg.ContentType.Text, "registered", http.StatusCreated)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "authHandler.logout")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "GET, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	authToken := r.Header.Get(AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.authService.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	// an explicit logout from a remembered device also revokes silent re-entry
	if deviceID := r.URL.Query().Get("deviceId"); deviceID != "" {
		if err := handler.devices.SetAutoLogin(ctx, deviceID, false); err != nil && !errors.Is(err, ErrDeviceNotFound) {
			log.Errorf("logout, disable auto login for device [%s]: %s", deviceID, err)
		}
		handler.autoLogin.Forget(deviceID)
	}

	log.Printf("logout success")
	pkg.WriteTextResponseOK(w, "logged-out")
}
