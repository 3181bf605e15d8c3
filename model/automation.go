package model

import "time"

type Automation struct {
	ID uint64 `gorm:"primaryKey" json:"id"`

	UserEmail string `gorm:"column:user_email;size:255;not null;index" json:"user_email"`

	Name        string `gorm:"column:name;size:255;not null" json:"name"`
	Description string `gorm:"column:description;type:text" json:"description"`

	// 工作流定义原文 上传时校验为合法 JSON
	Workflow string `gorm:"column:workflow;type:longtext" json:"workflow,omitempty"`

	Enabled bool `gorm:"column:enabled;not null;default:false" json:"enabled"`

	EngineWorkflowID string `gorm:"column:engine_workflow_id;size:64" json:"engine_workflow_id,omitempty"`

	// JSON 数组 由上传时的输入扫描生成
	RequiredInputs string `gorm:"column:required_inputs;type:text" json:"required_inputs,omitempty"`

	// JSON 数组 语义搜索用的预计算向量
	Embedding string `gorm:"column:embedding;type:longtext" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (Automation) TableName() string {
	return "automation"
}
