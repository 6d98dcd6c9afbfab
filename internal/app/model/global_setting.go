package model

import "time"

// Setting keys consumed by the pricing engine
const (
	SettingAvgLabelCost = "avg_label_cost"
)

type GlobalSetting struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SettingKey   string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"setting_key"`
	SettingValue float64   `gorm:"not null" json:"setting_value"`
	Description  string    `gorm:"type:varchar(200)" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (GlobalSetting) TableName() string {
	return "global_settings"
}
