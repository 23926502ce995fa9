package storage

import (
	"context"
	"fmt"

	"github.com/VenEttore/nw-planner/internal/app"
)

// Task CRUD and completion tracking. Reset-period keys are opaque
// strings supplied by the caller; this store never computes them.

// CreateTask inserts a task definition.
func (s *Store) CreateTask(ctx context.Context, task app.Task) (*app.Task, error) {
	if task.Name == "" {
		return nil, fmt.Errorf("task name is required")
	}
	if task.Priority == "" {
		task.Priority = "Medium"
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (name, description, type, priority, rewards)
		VALUES (?, ?, ?, ?, ?)`,
		task.Name, task.Description, task.Type, task.Priority, task.Rewards)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted task id: %w", err)
	}

	task.ID = id
	return &task, nil
}

// ListTasks returns all task definitions, highest priority first.
func (s *Store) ListTasks(ctx context.Context) ([]app.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), type, priority, COALESCE(rewards, '')
		FROM tasks ORDER BY priority DESC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []app.Task
	for rows.Next() {
		var task app.Task
		err := rows.Scan(&task.ID, &task.Name, &task.Description, &task.Type, &task.Priority, &task.Rewards)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}
	return tasks, nil
}

// DeleteTask removes a task definition along with its assignments and
// completions (cascade).
func (s *Store) DeleteTask(ctx context.Context, taskID int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, taskID); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", taskID, err)
	}
	return nil
}

// AssignTask links a task to a character. Re-assigning is a no-op.
func (s *Store) AssignTask(ctx context.Context, taskID, characterID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO task_assignments (task_id, character_id) VALUES (?, ?)`,
		taskID, characterID)
	if err != nil {
		return fmt.Errorf("failed to assign task %d to character %d: %w", taskID, characterID, err)
	}
	return nil
}

// RemoveTaskAssignment unlinks a task from a character.
func (s *Store) RemoveTaskAssignment(ctx context.Context, taskID, characterID int64) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM task_assignments WHERE task_id = ? AND character_id = ?`, taskID, characterID)
	if err != nil {
		return fmt.Errorf("failed to remove assignment of task %d from character %d: %w", taskID, characterID, err)
	}
	return nil
}

// TasksForCharacter returns the tasks assigned to one character.
func (s *Store) TasksForCharacter(ctx context.Context, characterID int64) ([]app.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, COALESCE(t.description, ''), t.type, t.priority, COALESCE(t.rewards, '')
		FROM tasks t
		JOIN task_assignments ta ON t.id = ta.task_id
		WHERE ta.character_id = ?
		ORDER BY t.priority DESC, t.name ASC`, characterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks for character %d: %w", characterID, err)
	}
	defer rows.Close()

	var tasks []app.Task
	for rows.Next() {
		var task app.Task
		err := rows.Scan(&task.ID, &task.Name, &task.Description, &task.Type, &task.Priority, &task.Rewards)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assigned task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assigned tasks: %w", err)
	}
	return tasks, nil
}

// MarkTaskComplete records a completion for the period, bumping the
// streak when the same period is re-marked.
func (s *Store) MarkTaskComplete(ctx context.Context, taskID, characterID int64, resetPeriod string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO task_completions (task_id, character_id, reset_period, streak_count)
		VALUES (?, ?, ?, COALESCE(
			(SELECT streak_count + 1 FROM task_completions
			 WHERE task_id = ? AND character_id = ? AND reset_period = ?),
			1
		))`,
		taskID, characterID, resetPeriod, taskID, characterID, resetPeriod)
	if err != nil {
		return fmt.Errorf("failed to mark task %d complete for character %d: %w", taskID, characterID, err)
	}
	return nil
}

// MarkTaskIncomplete removes a completion for the period.
func (s *Store) MarkTaskIncomplete(ctx context.Context, taskID, characterID int64, resetPeriod string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM task_completions
		WHERE task_id = ? AND character_id = ? AND reset_period = ?`,
		taskID, characterID, resetPeriod)
	if err != nil {
		return fmt.Errorf("failed to mark task %d incomplete for character %d: %w", taskID, characterID, err)
	}
	return nil
}

// IsTaskComplete reports whether a completion exists for the period.
func (s *Store) IsTaskComplete(ctx context.Context, taskID, characterID int64, resetPeriod string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM task_completions
		WHERE task_id = ? AND character_id = ? AND reset_period = ?`,
		taskID, characterID, resetPeriod).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check completion of task %d: %w", taskID, err)
	}
	return count > 0, nil
}

// CompletionStats aggregates per-character completions for one period.
func (s *Store) CompletionStats(ctx context.Context, resetPeriod string) ([]app.CompletionStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tc.character_id, c.name,
		       COUNT(*),
		       COUNT(CASE WHEN t.type = 'daily' THEN 1 END),
		       COUNT(CASE WHEN t.type = 'weekly' THEN 1 END)
		FROM task_completions tc
		JOIN tasks t ON tc.task_id = t.id
		JOIN characters c ON tc.character_id = c.id
		WHERE tc.reset_period = ?
		GROUP BY tc.character_id, c.name`, resetPeriod)
	if err != nil {
		return nil, fmt.Errorf("failed to query completion stats: %w", err)
	}
	defer rows.Close()

	var stats []app.CompletionStat
	for rows.Next() {
		var stat app.CompletionStat
		err := rows.Scan(&stat.CharacterID, &stat.CharacterName,
			&stat.TotalCompletions, &stat.DailyCompletions, &stat.WeeklyCompletions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan completion stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate completion stats: %w", err)
	}
	return stats, nil
}
