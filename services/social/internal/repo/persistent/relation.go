package persistent

import (
	"errors"
	"fmt"

	"fun123/services/social/internal/entity"
	"fun123/services/social/internal/model"

	"gorm.io/gorm"
)

// relation names the tables backing one catalog kind. cast is empty for
// kinds without actors.
type relation struct {
	items string
	marks string
	cast  string
}

var relations = map[entity.Kind]relation{
	entity.KindMovie: {
		items: model.MovieModel{}.TableName(),
		marks: model.MarkMovieModel{}.TableName(),
		cast:  model.MovieCastModel{}.TableName(),
	},
	entity.KindTV: {
		items: model.TVModel{}.TableName(),
		marks: model.MarkTVModel{}.TableName(),
		cast:  model.TVCastModel{}.TableName(),
	},
	entity.KindNovel: {
		items: model.NovelModel{}.TableName(),
		marks: model.MarkNovelModel{}.TableName(),
	},
	entity.KindUploader: {
		items: model.UploaderModel{}.TableName(),
		marks: model.MarkUploaderModel{}.TableName(),
	},
}

func relationFor(kind entity.Kind) (relation, error) {
	rel, ok := relations[kind]
	if !ok {
		return relation{}, fmt.Errorf("%w: %d", entity.ErrUnknownKind, uint8(kind))
	}
	return rel, nil
}

// translate maps driver-level failures onto the domain sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entity.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", entity.ErrConflict, err)
	default:
		return err
	}
}
