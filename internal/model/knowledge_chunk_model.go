package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type KnowledgeChunk struct {
	Id             string                      `gorm:"type:text;primaryKey"`
	Title          string                      `gorm:"type:text"`
	Content        string                      `gorm:"type:text;not null"`
	Category       string                      `gorm:"type:varchar(64);index"`
	Tags           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector             `gorm:"type:vector(768)"` // nomic-embed-text dimensions
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                   `gorm:"autoUpdateTime"`
}

func (KnowledgeChunk) TableName() string {
	return "knowledge_chunks"
}
