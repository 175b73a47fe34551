package repository

import (
	"context"
	"errors"
	"time"

	"github.com/yukikurage/smart-todo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type workspaceRow struct {
	Username  string `gorm:"primaryKey;size:191"`
	UpdatedAt time.Time
}

func (workspaceRow) TableName() string { return "workspaces" }

type taskRow struct {
	ID            string `gorm:"primaryKey;size:36"`
	Username      string `gorm:"size:191;not null;index:idx_workspace_tasks_owner,priority:1"`
	Position      int    `gorm:"not null;index:idx_workspace_tasks_owner,priority:2"`
	Text          string `gorm:"type:text;not null"`
	Completed     bool   `gorm:"not null;default:false"`
	Priority      string `gorm:"size:10;not null"`
	PriorityValue int    `gorm:"not null"`
	DueDate       string `gorm:"size:10"`
	Details       string `gorm:"type:text"`
	CreatedStamp  string `gorm:"column:created_at;size:19"`
}

func (taskRow) TableName() string { return "workspace_tasks" }

type noteRow struct {
	ID       string `gorm:"primaryKey;size:36"`
	Username string `gorm:"size:191;not null;index:idx_workspace_notes_owner,priority:1"`
	Position int    `gorm:"not null;index:idx_workspace_notes_owner,priority:2"`
	Title    string `gorm:"type:text"`
	Content  string `gorm:"type:text"`
}

func (noteRow) TableName() string { return "workspace_notes" }

// MigrateWorkspaceTables creates the tables used by GormWorkspaceRepository.
func MigrateWorkspaceTables(db *gorm.DB) error {
	return db.AutoMigrate(&workspaceRow{}, &taskRow{}, &noteRow{})
}

// GormWorkspaceRepository is a GORM implementation of WorkspaceRepository
type GormWorkspaceRepository struct {
	db *gorm.DB
}

// NewGormWorkspaceRepository creates a new WorkspaceRepository
func NewGormWorkspaceRepository(db *gorm.DB) WorkspaceRepository {
	return &GormWorkspaceRepository{db: db}
}

// Load reads the user's rows ordered by position
func (r *GormWorkspaceRepository) Load(ctx context.Context, username string) (*models.Workspace, error) {
	db := r.db.WithContext(ctx)

	var owner workspaceRow
	if err := db.Where("username = ?", username).First(&owner).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.Workspace{Tasks: []models.Task{}}, nil
		}
		return nil, err
	}

	var taskRows []taskRow
	if err := db.Where("username = ?", username).Order("position").Find(&taskRows).Error; err != nil {
		return nil, err
	}

	var noteRows []noteRow
	if err := db.Where("username = ?", username).Order("position").Find(&noteRows).Error; err != nil {
		return nil, err
	}

	ws := &models.Workspace{
		Tasks: make([]models.Task, len(taskRows)),
		Notes: make([]models.Note, len(noteRows)),
	}
	for i, row := range taskRows {
		ws.Tasks[i] = models.Task{
			ID:            row.ID,
			Text:          row.Text,
			Completed:     row.Completed,
			Priority:      models.Priority(row.Priority),
			PriorityValue: row.PriorityValue,
			DueDate:       row.DueDate,
			Details:       row.Details,
			CreatedAt:     row.CreatedStamp,
		}
	}
	for i, row := range noteRows {
		ws.Notes[i] = models.Note{ID: row.ID, Title: row.Title, Content: row.Content}
	}

	return ws, nil
}

// Save replaces all of the user's rows in a transaction
func (r *GormWorkspaceRepository) Save(ctx context.Context, username string, ws *models.Workspace) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&taskRow{}).Error; err != nil {
			return err
		}

		if err := tx.Where("username = ?", username).Delete(&noteRow{}).Error; err != nil {
			return err
		}

		if len(ws.Tasks) > 0 {
			rows := make([]taskRow, len(ws.Tasks))
			for i, task := range ws.Tasks {
				rows[i] = taskRow{
					ID:            task.ID,
					Username:      username,
					Position:      i,
					Text:          task.Text,
					Completed:     task.Completed,
					Priority:      string(task.Priority),
					PriorityValue: task.PriorityValue,
					DueDate:       task.DueDate,
					Details:       task.Details,
					CreatedStamp:  task.CreatedAt,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if len(ws.Notes) > 0 {
			rows := make([]noteRow, len(ws.Notes))
			for i, note := range ws.Notes {
				rows[i] = noteRow{
					ID:       note.ID,
					Username: username,
					Position: i,
					Title:    note.Title,
					Content:  note.Content,
				}
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		return tx.Clauses(clause.OnConflict{UpdateAll: true}).
			Create(&workspaceRow{Username: username}).Error
	})
}
