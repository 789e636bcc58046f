package models

import "time"

type JSONDocument struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Filename  string    `gorm:"type:varchar(255);not null" json:"filename"`
	Content   string    `gorm:"type:longtext;not null" json:"content"`
	AccessURL string    `gorm:"type:varchar(512);not null" json:"accessUrl"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

func (JSONDocument) TableName() string {
	return "json_documents"
}
