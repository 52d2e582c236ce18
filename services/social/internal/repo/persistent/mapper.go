package persistent

import (
	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"
)

func ToRoleEntity(m *model.RoleModel) *entity.Role {
	if m == nil {
		return nil
	}

	return &entity.Role{
		ID:          m.ID,
		Name:        m.Name,
		Default:     m.Default,
		Permissions: entity.Permission(m.Permissions),
	}
}

func ToRoleModel(e *entity.Role) *model.RoleModel {
	if e == nil {
		return nil
	}

	return &model.RoleModel{
		ID:          e.ID,
		Name:        e.Name,
		Default:     e.Default,
		Permissions: int(e.Permissions),
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		AvatarURL:    m.AvatarURL,
		AvatarKey:    m.AvatarKey,
		Confirmed:    m.Confirmed,
		RoleID:       m.RoleID,
		Role:         ToRoleEntity(m.Role),
		RealName:     m.RealName,
		Location:     m.Location,
		AboutMe:      m.AboutMe,
		MemberSince:  m.MemberSince,
		LastSeen:     m.LastSeen,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// ToUserModel leaves the Role association empty; role changes go through RoleID.
func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}

	return &model.UserModel{
		ID:           e.ID,
		Email:        e.Email,
		Username:     e.Username,
		PasswordHash: e.PasswordHash,
		AvatarURL:    e.AvatarURL,
		AvatarKey:    e.AvatarKey,
		Confirmed:    e.Confirmed,
		RoleID:       e.RoleID,
		RealName:     e.RealName,
		Location:     e.Location,
		AboutMe:      e.AboutMe,
		MemberSince:  e.MemberSince,
		LastSeen:     e.LastSeen,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func ToFollowEntity(m *model.FollowModel) *entity.Follow {
	if m == nil {
		return nil
	}

	return &entity.Follow{
		FollowerID: m.FollowerID,
		FollowedID: m.FollowedID,
		CreatedAt:  m.CreatedAt,
	}
}

func ToCatalogItemEntity(kind entity.Kind, m *model.CatalogItem) *entity.CatalogItem {
	if m == nil {
		return nil
	}

	return &entity.CatalogItem{
		ID:        m.ID,
		Kind:      kind,
		Name:      m.Name,
		PicURL:    m.PicURL,
		CreatedAt: m.CreatedAt,
	}
}

func ToCatalogItemModel(e *entity.CatalogItem) *model.CatalogItem {
	if e == nil {
		return nil
	}

	return &model.CatalogItem{
		ID:        e.ID,
		Name:      e.Name,
		PicURL:    e.PicURL,
		CreatedAt: e.CreatedAt,
	}
}

func ToActorEntity(m *model.ActorModel) *entity.Actor {
	if m == nil {
		return nil
	}

	return &entity.Actor{
		ID:        m.ID,
		Name:      m.Name,
		PicURL:    m.PicURL,
		CreatedAt: m.CreatedAt,
	}
}

func ToActorModel(e *entity.Actor) *model.ActorModel {
	if e == nil {
		return nil
	}

	return &model.ActorModel{CatalogItem: model.CatalogItem{
		ID:        e.ID,
		Name:      e.Name,
		PicURL:    e.PicURL,
		CreatedAt: e.CreatedAt,
	}}
}

func ToMarkEntity(kind entity.Kind, m *model.MarkEdge) *entity.Mark {
	if m == nil {
		return nil
	}

	return &entity.Mark{
		UserID:    m.UserID,
		Kind:      kind,
		TargetID:  m.TargetID,
		CreatedAt: m.CreatedAt,
	}
}
