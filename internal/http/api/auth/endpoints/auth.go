package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/pathsapp/backend/internal/db"
	"github.com/pathsapp/backend/internal/http/api"
	"github.com/pathsapp/backend/internal/http/api/auth/packets"
	"github.com/pathsapp/backend/internal/http/middleware"
	"github.com/pathsapp/backend/internal/mail"
	"github.com/pathsapp/backend/internal/model"
)

type AuthController struct {
	store  db.Store
	mailer mail.Mailer
}

func newAuthController(store db.Store, mailer mail.Mailer) *AuthController {
	return &AuthController{store: store, mailer: mailer}
}

// PublicModule mounts the registration and login endpoints that must work
// without a session.
func PublicModule(store db.Store, mailer mail.Mailer) api.Module {
	ctl := newAuthController(store, mailer)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/register", ctl.register)
		c.GET("/register/email-taken", ctl.emailTaken)
		c.GET("/register/verify-email", ctl.verifyEmail)
		c.POST("/register/resend-email", ctl.resendEmail)
		c.POST("/login", ctl.login)
	})
}

// SessionModule mounts the endpoints that operate on the logged-in user.
func SessionModule(store db.Store) api.Module {
	ctl := newAuthController(store, nil)
	return api.ModuleFunc(func(c *api.Controller) {
		c.AuthPOST("/logout", ctl.logout)
		c.AuthGET("/userinfo", ctl.userinfo)
		c.AuthPOST("/userinfo", ctl.updateUserinfo)
		c.AuthPUT("/userinfo", ctl.replaceUserinfo)
		c.AuthPOST("/userinfo/change-password", ctl.changePassword)
	})
}

// POST /register
func (a *AuthController) register(ctx *gin.Context) (any, *api.APIError) {
	var request packets.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	taken, err := a.store.IsEmailTaken(request.Email)
	if err != nil {
		log.Error().Err(err).Msg("email-taken lookup failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if taken {
		return nil, api.Errorf(http.StatusConflict, "email taken")
	}

	hash, err := middleware.HashPassword(request.Password)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	user, err := a.store.CreateUser(request.Email, request.FirstName, request.LastName, request.Nickname, hash)
	if err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not create user")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	// Token creation and the mail that carries it are separate statements;
	// a failure here leaves an unverified user that /register/resend-email
	// answers with 412 until support intervenes.
	token, err := a.store.CreateToken(user.ID)
	if err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not create verification token")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	if err := a.mailer.SendVerification(user.Email, token); err != nil {
		log.Error().Err(err).Str("email", user.Email).Msg("could not send verification mail")
		return nil, api.Errorf(http.StatusInternalServerError, "could not send verification email")
	}

	return packets.UserView(user), nil
}

// GET /register/email-taken
func (a *AuthController) emailTaken(ctx *gin.Context) (any, *api.APIError) {
	var query packets.EmailTakenQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	taken, err := a.store.IsEmailTaken(query.Email)
	if err != nil {
		log.Error().Err(err).Msg("email-taken lookup failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	return packets.TakenResponse{Taken: taken}, nil
}

// GET /register/verify-email
func (a *AuthController) verifyEmail(ctx *gin.Context) (any, *api.APIError) {
	var query packets.VerifyEmailQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	verified, err := a.store.VerifyUserByToken(query.Token)
	if err != nil {
		log.Error().Err(err).Msg("token verification failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if !verified {
		return nil, api.Errorf(http.StatusPreconditionFailed, "invalid token")
	}

	// The token is single-use; discard it now that it has been consumed.
	if _, err := a.store.DeleteToken(query.Token); err != nil {
		log.Error().Err(err).Msg("could not delete consumed token")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	return packets.SuccessResponse{Success: true}, nil
}

// POST /register/resend-email
func (a *AuthController) resendEmail(ctx *gin.Context) (any, *api.APIError) {
	var request packets.ResendEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	token, err := a.store.GetTokenForEmail(request.Email)
	if err != nil {
		log.Error().Err(err).Msg("token lookup failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if token == "" {
		return nil, api.Errorf(http.StatusPreconditionFailed, "there is no token available")
	}

	if err := a.mailer.SendVerification(request.Email, token); err != nil {
		log.Error().Err(err).Str("email", request.Email).Msg("could not send verification mail")
		return nil, api.Errorf(http.StatusInternalServerError, "could not send verification email")
	}

	return packets.SuccessResponse{Success: true}, nil
}

// POST /login
func (a *AuthController) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	user, err := a.store.GetUserByEmail(request.Email)
	if err != nil {
		log.Error().Err(err).Msg("user lookup failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if user == nil {
		return nil, api.Errorf(http.StatusUnauthorized, "username not found")
	}
	if !middleware.CheckPassword(user.PasswordHash, request.Password) {
		return nil, api.Errorf(http.StatusUnauthorized, "bad password")
	}
	if !user.EmailVerified {
		return nil, api.Errorf(http.StatusForbidden, "email not verified")
	}

	if err := middleware.SetSessionUser(ctx, user.ID); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("could not save session")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	return packets.UserView(user), nil
}

// POST /logout
func (a *AuthController) logout(ctx *gin.Context, _ *model.User) (any, *api.APIError) {
	if err := middleware.ClearSession(ctx); err != nil {
		log.Error().Err(err).Msg("could not clear session")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	return packets.SuccessResponse{Success: true}, nil
}

// GET /userinfo
func (a *AuthController) userinfo(_ *gin.Context, user *model.User) (any, *api.APIError) {
	return packets.UserView(user), nil
}

// POST /userinfo
func (a *AuthController) updateUserinfo(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	var fields []db.Assignment
	if request.FirstName != nil {
		fields = append(fields, db.Set("first_name", *request.FirstName))
	}
	if request.LastName != nil {
		fields = append(fields, db.Set("last_name", *request.LastName))
	}
	if request.Nickname != nil {
		fields = append(fields, db.Set("nickname", *request.Nickname))
	}
	if len(fields) == 0 {
		return nil, api.Errorf(http.StatusBadRequest, "no fields to update")
	}

	return a.applyUserUpdate(user.ID, fields)
}

// PUT /userinfo
func (a *AuthController) replaceUserinfo(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ReplaceUserRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	fields := []db.Assignment{
		db.Set("first_name", request.FirstName),
		db.Set("last_name", request.LastName),
		db.Set("nickname", request.Nickname),
	}

	return a.applyUserUpdate(user.ID, fields)
}

func (a *AuthController) applyUserUpdate(userID int, fields []db.Assignment) (any, *api.APIError) {
	updated, err := a.store.UpdateUser(userID, fields)
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("user update failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	if !updated {
		return nil, api.Errorf(http.StatusInternalServerError, "failed to update")
	}

	fresh, err := a.store.GetUserByID(userID)
	if err != nil || fresh == nil {
		log.Error().Err(err).Int("user_id", userID).Msg("could not reload updated user")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}
	return packets.UserView(fresh), nil
}

// POST /userinfo/change-password
func (a *AuthController) changePassword(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, api.Errorf(http.StatusBadRequest, err.Error())
	}

	if !middleware.CheckPassword(user.PasswordHash, request.OldPassword) {
		return nil, api.Errorf(http.StatusForbidden, "invalid old password")
	}

	hash, err := middleware.HashPassword(request.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("password hashing failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	if _, err := a.store.ChangePassword(user.ID, hash); err != nil {
		log.Error().Err(err).Int("user_id", user.ID).Msg("password change failed")
		return nil, api.Errorf(http.StatusInternalServerError, "something went wrong")
	}

	return packets.SuccessResponse{Success: true}, nil
}
