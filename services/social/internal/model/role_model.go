package model

type RoleModel struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(64);uniqueIndex;not null" json:"name"`
	Default     bool   `gorm:"column:default;index;not null" json:"default"`
	Permissions int    `gorm:"not null" json:"permissions"`
}

func (RoleModel) TableName() string {
	return "roles"
}
