package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"fun123/pkg/config"
	"fun123/pkg/jwt"
	"fun123/pkg/logger"
	"fun123/pkg/queue"
	"fun123/pkg/reqctx"
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/repo/persistent"

	"github.com/google/uuid"
)

type ProfileUpdate struct {
	RealName *string
	Location *string
	AboutMe  *string
}

type AuthUseCase interface {
	// Register creates the account, queues a confirmation mail and returns an
	// api token.
	Register(ctx context.Context, email, username, password string) (*entity.User, string, error)
	Login(ctx context.Context, email, password string) (*entity.User, string, error)
	GetUser(ctx context.Context, userID string) (*entity.User, error)
	IssueToken(user *entity.User, purpose jwt.Purpose, value string) (string, error)
	// ConsumeToken reports false, never an error, for tokens that fail
	// validation or belong to someone other than callerID. Errors are
	// reserved for persistence failures.
	ConsumeToken(ctx context.Context, callerID, token string) (bool, error)
	ResetPassword(ctx context.Context, callerID, token, newPassword string) error
	TouchActivity(ctx context.Context, userID string) error
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.User, error)
	UploadAvatar(ctx context.Context, userID string, file io.Reader, filename, contentType string) (*entity.User, error)
	RequestConfirmation(ctx context.Context, userID string) error
	RequestEmailChange(ctx context.Context, userID, newEmail string) error
	RequestPasswordChange(ctx context.Context, userID string) error
	RequestPasswordReset(ctx context.Context, userID string) error
}

type authUseCase struct {
	userRepo    persistent.UserRepository
	roleRepo    persistent.RoleRepository
	jwtService  *jwt.Service
	avatarStore AvatarStore
	mailer      Mailer
	cfg         *config.Config
	logger      *logger.Logger
	now         func() time.Time
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	roleRepo persistent.RoleRepository,
	jwtService *jwt.Service,
	avatarStore AvatarStore,
	mailer Mailer,
	cfg *config.Config,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		jwtService:  jwtService,
		avatarStore: avatarStore,
		mailer:      mailer,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

func (uc *authUseCase) Register(ctx context.Context, email, username, password string) (*entity.User, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)

	if _, err := uc.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", entity.ErrEmailTaken
	} else if !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Error("Failed to look up email: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	if _, err := uc.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, "", entity.ErrUsernameTaken
	} else if !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Error("Failed to look up username: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Email:    email,
		Username: username,
		AboutMe:  entity.DefaultAboutMe,
	}
	user.AvatarURL = user.Gravatar(reqctx.IsSecure(ctx))
	if err := user.SetPassword(password); err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	role, err := uc.initialRole(ctx, email)
	if err != nil {
		uc.logger.Error("Failed to resolve initial role: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}
	if role != nil {
		user.RoleID = &role.ID
		user.Role = role
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return nil, "", fmt.Errorf("failed to create user: %w", err)
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	if err := uc.sendTokenMail(user, user.Email, jwt.PurposeConfirm, "", queue.TemplateConfirm, "Confirm Your Account"); err != nil {
		uc.logger.Error("[MAIL] Failed to prepare confirmation mail for user %s: %v", user.ID, err)
	}

	token, err := uc.IssueToken(user, jwt.PurposeAPI, "")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// initialRole picks Admin for the configured administrator address and the
// default role otherwise. A nil role means roles have not been seeded yet;
// the bootstrap task assigns one later.
func (uc *authUseCase) initialRole(ctx context.Context, email string) (*entity.Role, error) {
	if uc.cfg.AdminEmail != "" && email == uc.cfg.AdminEmail {
		role, err := uc.roleRepo.GetByName(ctx, entity.RoleAdmin)
		if err == nil {
			return role, nil
		}
		if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
	}

	role, err := uc.roleRepo.GetDefault(ctx)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil
	}
	return role, err
}

func (uc *authUseCase) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if !errors.Is(err, entity.ErrNotFound) {
			uc.logger.Error("Failed to look up user: %v", err)
		}
		return nil, "", entity.ErrInvalidCredentials
	}

	if !user.VerifyPassword(password) {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := uc.IssueToken(user, jwt.PurposeAPI, "")
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (uc *authUseCase) GetUser(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *authUseCase) IssueToken(user *entity.User, purpose jwt.Purpose, value string) (string, error) {
	ttl := time.Duration(uc.cfg.TokenTTLSeconds) * time.Second
	if purpose == jwt.PurposeAPI {
		ttl = time.Duration(uc.cfg.APITokenTTLSeconds) * time.Second
	}
	if ttl <= 0 {
		ttl = jwt.DefaultTTL
	}

	token, err := uc.jwtService.GenerateTokenWithTTL(user.ID, purpose, value, ttl)
	if err != nil {
		uc.logger.Error("Failed to generate %s token: %v", purpose, err)
		return "", fmt.Errorf("failed to generate token")
	}
	return token, nil
}

// verify decodes token and loads its subject. Any failure, including a
// subject other than callerID, yields nil claims and a nil error.
func (uc *authUseCase) verify(ctx context.Context, callerID, token string) (*jwt.Claims, *entity.User, error) {
	claims, err := uc.jwtService.ValidateToken(token)
	if err != nil {
		uc.logger.Debug("Rejected token: %v", err)
		return nil, nil, nil
	}
	if callerID == "" || claims.UserID != callerID {
		uc.logger.Warn("Token subject %s does not match caller %s", claims.UserID, callerID)
		return nil, nil, nil
	}

	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if errors.Is(err, entity.ErrNotFound) {
		return nil, nil, nil
	}
	if err != nil {
		uc.logger.Error("Failed to load token subject: %v", err)
		return nil, nil, fmt.Errorf("failed to verify token")
	}
	return claims, user, nil
}

func (uc *authUseCase) ConsumeToken(ctx context.Context, callerID, token string) (bool, error) {
	claims, user, err := uc.verify(ctx, callerID, token)
	if err != nil || claims == nil {
		return false, err
	}

	switch claims.Purpose {
	case jwt.PurposeAPI, jwt.PurposeChangePassword, jwt.PurposeResetPassword:
		return true, nil
	case jwt.PurposeConfirm:
		if user.Confirmed {
			return true, nil
		}
		user.Confirmed = true
		if err := uc.userRepo.Update(ctx, user); err != nil {
			uc.logger.Error("Failed to confirm user %s: %v", user.ID, err)
			return false, fmt.Errorf("failed to confirm account: %w", err)
		}
		return true, nil
	case jwt.PurposeResetEmail:
		return uc.changeEmail(ctx, user, claims.Value)
	default:
		return false, nil
	}
}

func (uc *authUseCase) changeEmail(ctx context.Context, user *entity.User, newEmail string) (bool, error) {
	newEmail = strings.TrimSpace(newEmail)
	if newEmail == "" {
		return false, nil
	}

	user.Email = newEmail
	if !uc.hasStoredAvatar(user) {
		user.AvatarURL = user.Gravatar(reqctx.IsSecure(ctx))
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return false, entity.ErrEmailTaken
		}
		uc.logger.Error("Failed to change email for %s: %v", user.ID, err)
		return false, fmt.Errorf("failed to change email")
	}
	return true, nil
}

// hasStoredAvatar reports whether the user's uploaded avatar file still
// exists. Lookup failures keep the current avatar.
func (uc *authUseCase) hasStoredAvatar(user *entity.User) bool {
	if !user.HasCustomAvatar() || uc.avatarStore == nil {
		return false
	}
	ok, err := uc.avatarStore.Exists(user.AvatarKey)
	if err != nil {
		uc.logger.Error("Failed to check avatar %s: %v", user.AvatarKey, err)
		return true
	}
	return ok
}

func (uc *authUseCase) ResetPassword(ctx context.Context, callerID, token, newPassword string) error {
	claims, user, err := uc.verify(ctx, callerID, token)
	if err != nil {
		return err
	}
	if claims == nil || (claims.Purpose != jwt.PurposeChangePassword && claims.Purpose != jwt.PurposeResetPassword) {
		return entity.ErrInvalidToken
	}

	if err := user.SetPassword(newPassword); err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return fmt.Errorf("failed to reset password")
	}
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to store password for %s: %v", user.ID, err)
		return fmt.Errorf("failed to reset password")
	}
	return nil
}

func (uc *authUseCase) TouchActivity(ctx context.Context, userID string) error {
	if err := uc.userRepo.UpdateLastSeen(ctx, userID, uc.now().UTC()); err != nil {
		uc.logger.Warn("Failed to record activity for user %s: %v", userID, err)
		return err
	}
	return nil
}

func (uc *authUseCase) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.RealName != nil {
		user.RealName = strings.TrimSpace(*update.RealName)
	}
	if update.Location != nil {
		user.Location = strings.TrimSpace(*update.Location)
	}
	if update.AboutMe != nil {
		user.AboutMe = *update.AboutMe
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update profile for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update profile")
	}
	return user, nil
}

func (uc *authUseCase) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename, contentType string) (*entity.User, error) {
	if uc.avatarStore == nil {
		return nil, fmt.Errorf("avatar storage is not configured")
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), path.Ext(filename))
	avatarURL, err := uc.avatarStore.UploadFile(key, file, contentType)
	if err != nil {
		uc.logger.Error("Failed to upload avatar: %v", err)
		return nil, fmt.Errorf("failed to upload avatar")
	}

	previousKey := user.AvatarKey
	user.AvatarURL = avatarURL
	user.AvatarKey = key
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.logger.Error("Failed to update user: %v", err)
		return nil, fmt.Errorf("failed to update user")
	}

	if previousKey != "" && previousKey != key {
		if err := uc.avatarStore.DeleteFile(previousKey); err != nil {
			uc.logger.Warn("Failed to delete previous avatar %s: %v", previousKey, err)
		}
	}
	return user, nil
}

func (uc *authUseCase) RequestConfirmation(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Confirmed {
		return nil
	}
	return uc.sendTokenMail(user, user.Email, jwt.PurposeConfirm, "", queue.TemplateConfirm, "Confirm Your Account")
}

func (uc *authUseCase) RequestEmailChange(ctx context.Context, userID, newEmail string) error {
	newEmail = strings.TrimSpace(newEmail)

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if _, err := uc.userRepo.GetByEmail(ctx, newEmail); err == nil {
		return entity.ErrEmailTaken
	} else if !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Error("Failed to look up email: %v", err)
		return fmt.Errorf("failed to request email change")
	}

	return uc.sendTokenMail(user, newEmail, jwt.PurposeResetEmail, newEmail, queue.TemplateChangeEmail, "Confirm Your Email Address")
}

func (uc *authUseCase) RequestPasswordChange(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.sendTokenMail(user, user.Email, jwt.PurposeChangePassword, "", queue.TemplateChangePassword, "Change Your Password")
}

func (uc *authUseCase) RequestPasswordReset(ctx context.Context, userID string) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return uc.sendTokenMail(user, user.Email, jwt.PurposeResetPassword, "", queue.TemplateResetPassword, "Reset Your Password")
}

// sendTokenMail issues a token and queues the mail carrying it. Queue
// failures are logged and do not fail the calling flow.
func (uc *authUseCase) sendTokenMail(user *entity.User, to string, purpose jwt.Purpose, value, template, subject string) error {
	token, err := uc.IssueToken(user, purpose, value)
	if err != nil {
		return err
	}

	if uc.mailer == nil {
		uc.logger.Warn("[MAIL] No mail queue configured, dropping %s mail for user %s", purpose, user.ID)
		return nil
	}

	task := queue.MailTask{
		To:       to,
		Subject:  strings.TrimSpace(uc.cfg.MailSubjectPrefix + " " + subject),
		Template: template,
		Username: user.Username,
		Token:    token,
		QueuedAt: uc.now().UTC(),
	}
	if err := uc.mailer.PublishMailTask(task); err != nil {
		uc.logger.Error("[MAIL] Failed to queue %s mail for user %s: %v", purpose, user.ID, err)
	}
	return nil
}
