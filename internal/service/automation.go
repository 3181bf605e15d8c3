package service

import (
	"ModelFlow/internal/dto"
	"ModelFlow/internal/engine"
	"ModelFlow/internal/repo"
	"ModelFlow/model"
	"ModelFlow/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"
)

// UploadAutomation validates and stores a workflow automation. Input detection
// always runs; embedding generation is best effort so a slow or unreachable
// embedding API never blocks an upload.
func UploadAutomation(ctx context.Context, email string, req *dto.AutomationUploadRequest) (*model.Automation, error) {
	if !json.Valid([]byte(req.Workflow)) {
		return nil, fmt.Errorf("workflow is not valid JSON: %w", utils.ErrBadRequest)
	}

	inputs := DetectRequiredInputs(req.Workflow)
	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return nil, err
	}

	automation := &model.Automation{
		UserEmail:      email,
		Name:           req.Name,
		Description:    req.Description,
		Workflow:       req.Workflow,
		RequiredInputs: string(inputsJSON),
	}

	if embedding, err := GenerateEmbedding(ctx, embeddingText(req.Name, req.Description)); err != nil {
		log.Printf("embedding generation skipped for automation %q: %v", req.Name, err)
	} else if raw, err := json.Marshal(embedding); err == nil {
		automation.Embedding = string(raw)
	}

	if err := repo.Db.Create(automation).Error; err != nil {
		return nil, err
	}
	return automation, nil
}

// ListAutomations returns the caller's automations without workflow bodies.
func ListAutomations(email string) ([]model.Automation, error) {
	var automations []model.Automation
	err := repo.Db.
		Omit("workflow", "embedding").
		Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&automations).Error
	if err != nil {
		return nil, err
	}
	return automations, nil
}

// GetAutomation returns one of the caller's automations, workflow included.
func GetAutomation(email string, id uint64) (*model.Automation, error) {
	var automation model.Automation
	err := repo.Db.Where("id = ?", id).First(&automation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("automation %d: %w", id, utils.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if automation.UserEmail != email {
		return nil, fmt.Errorf("automation %d: %w", id, utils.ErrNotFound)
	}
	return &automation, nil
}

// UpdateAutomation applies partial updates. A changed name or description
// refreshes the embedding; a changed workflow re-runs input detection.
func UpdateAutomation(ctx context.Context, email string, id uint64, req *dto.AutomationUpdateRequest) (*model.Automation, error) {
	automation, err := GetAutomation(email, id)
	if err != nil {
		return nil, err
	}

	reEmbed := false
	if req.Name != nil && *req.Name != automation.Name {
		automation.Name = *req.Name
		reEmbed = true
	}
	if req.Description != nil && *req.Description != automation.Description {
		automation.Description = *req.Description
		reEmbed = true
	}
	if req.Workflow != nil {
		if !json.Valid([]byte(*req.Workflow)) {
			return nil, fmt.Errorf("workflow is not valid JSON: %w", utils.ErrBadRequest)
		}
		automation.Workflow = *req.Workflow
		inputs := DetectRequiredInputs(*req.Workflow)
		inputsJSON, err := json.Marshal(inputs)
		if err != nil {
			return nil, err
		}
		automation.RequiredInputs = string(inputsJSON)
	}

	if reEmbed {
		if embedding, err := GenerateEmbedding(ctx, embeddingText(automation.Name, automation.Description)); err != nil {
			log.Printf("embedding refresh skipped for automation %d: %v", id, err)
		} else if raw, err := json.Marshal(embedding); err == nil {
			automation.Embedding = string(raw)
		}
	}

	if err := repo.Db.Save(automation).Error; err != nil {
		return nil, err
	}
	return automation, nil
}

// DeleteAutomation removes one of the caller's automations.
func DeleteAutomation(email string, id uint64) error {
	if _, err := GetAutomation(email, id); err != nil {
		return err
	}
	return repo.Db.Delete(&model.Automation{}, id).Error
}

// ToggleAutomation flips the enabled flag. When the automation is linked to an
// engine workflow the engine state is switched as well.
func ToggleAutomation(ctx context.Context, email string, id uint64, enabled bool) (*model.Automation, error) {
	automation, err := GetAutomation(email, id)
	if err != nil {
		return nil, err
	}
	if automation.Enabled == enabled {
		return automation, nil
	}

	if automation.EngineWorkflowID != "" {
		client := engine.NewClient()
		if client.Configured() {
			if err := client.SetActive(ctx, automation.EngineWorkflowID, enabled); err != nil {
				return nil, fmt.Errorf("engine toggle failed: %w", utils.ErrUpstream)
			}
		}
	}

	automation.Enabled = enabled
	if err := repo.Db.Model(automation).Update("enabled", enabled).Error; err != nil {
		return nil, err
	}
	return automation, nil
}

// ImportAutomation pushes the stored workflow into the engine and records the
// engine-side workflow id.
func ImportAutomation(ctx context.Context, email string, id uint64) (*model.Automation, error) {
	automation, err := GetAutomation(email, id)
	if err != nil {
		return nil, err
	}
	client := engine.NewClient()
	if !client.Configured() {
		return nil, fmt.Errorf("workflow engine not configured: %w", utils.ErrUpstream)
	}

	engineID, err := client.ImportWorkflow(ctx, automation.Workflow)
	if err != nil {
		return nil, fmt.Errorf("engine import failed: %w", utils.ErrUpstream)
	}

	automation.EngineWorkflowID = engineID
	if err := repo.Db.Model(automation).Update("engine_workflow_id", engineID).Error; err != nil {
		return nil, err
	}
	return automation, nil
}

// ExecuteAutomation runs an enabled, engine-linked automation with the given
// inputs and returns the raw engine result.
func ExecuteAutomation(ctx context.Context, email string, id uint64, inputs map[string]interface{}) (json.RawMessage, error) {
	automation, err := GetAutomation(email, id)
	if err != nil {
		return nil, err
	}
	if !automation.Enabled {
		return nil, fmt.Errorf("automation %d is disabled: %w", id, utils.ErrBadRequest)
	}
	if automation.EngineWorkflowID == "" {
		return nil, fmt.Errorf("automation %d is not imported into the engine: %w", id, utils.ErrBadRequest)
	}

	client := engine.NewClient()
	if !client.Configured() {
		return nil, fmt.Errorf("workflow engine not configured: %w", utils.ErrUpstream)
	}
	result, err := client.Run(ctx, automation.EngineWorkflowID, inputs)
	if err != nil {
		return nil, fmt.Errorf("engine run failed: %w", utils.ErrUpstream)
	}
	return result, nil
}

func embeddingText(name, description string) string {
	if description == "" {
		return name
	}
	return name + " " + description
}
