package model

import "time"

// CatalogItem holds the columns shared by every catalog table. Queries that
// work across kinds scan into it with an explicit table name.
type CatalogItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	PicURL    string    `gorm:"type:varchar(128)" json:"pic_url"`
	CreatedAt time.Time `json:"created_at"`
}

type MovieModel struct {
	CatalogItem
}

func (MovieModel) TableName() string { return "movies" }

type TVModel struct {
	CatalogItem
}

func (TVModel) TableName() string { return "tvs" }

type NovelModel struct {
	CatalogItem
}

func (NovelModel) TableName() string { return "novels" }

type UploaderModel struct {
	CatalogItem
}

func (UploaderModel) TableName() string { return "uploaders" }

type ActorModel struct {
	CatalogItem
}

func (ActorModel) TableName() string { return "actors" }

// MarkEdge is the shape of every per-kind mark table.
type MarkEdge struct {
	UserID    string    `gorm:"type:uuid;primaryKey" json:"user_id"`
	TargetID  uint      `gorm:"primaryKey;autoIncrement:false" json:"target_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MarkMovieModel struct{ MarkEdge }

func (MarkMovieModel) TableName() string { return "mark_movies" }

type MarkTVModel struct{ MarkEdge }

func (MarkTVModel) TableName() string { return "mark_tvs" }

type MarkNovelModel struct{ MarkEdge }

func (MarkNovelModel) TableName() string { return "mark_novels" }

type MarkUploaderModel struct{ MarkEdge }

func (MarkUploaderModel) TableName() string { return "mark_uploaders" }

// CastEdge links an actor to a movie or TV entry.
type CastEdge struct {
	ActorID  uint `gorm:"primaryKey;autoIncrement:false" json:"actor_id"`
	TargetID uint `gorm:"primaryKey;autoIncrement:false" json:"target_id"`
}

type MovieCastModel struct{ CastEdge }

func (MovieCastModel) TableName() string { return "role_of_movie" }

type TVCastModel struct{ CastEdge }

func (TVCastModel) TableName() string { return "role_of_tv" }
