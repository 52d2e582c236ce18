package model

import "gorm.io/gorm"

// All lists every table the service owns, in dependency order.
func All() []interface{} {
	return []interface{}{
		&RoleModel{},
		&UserModel{},
		&FollowModel{},
		&MovieModel{},
		&TVModel{},
		&NovelModel{},
		&UploaderModel{},
		&ActorModel{},
		&MarkMovieModel{},
		&MarkTVModel{},
		&MarkNovelModel{},
		&MarkUploaderModel{},
		&MovieCastModel{},
		&TVCastModel{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
