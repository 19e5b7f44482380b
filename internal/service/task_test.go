package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-comments-api/internal/model"
	"github.com/BuzzLyutic/task-comments-api/internal/repo"
)

// MockTaskRepository - мок репозитория задач
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, title string) (model.Task, error) {
	args := m.Called(ctx, title)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateTitle(ctx context.Context, id int64, title string) (model.Task, error) {
	args := m.Called(ctx, id, title)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) Seed(ctx context.Context, t model.Task) (bool, error) {
	args := m.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name      string
		input     model.TaskInput
		setupMock func(*MockTaskRepository)
		wantMsg   string
	}{
		{
			name:  "successful creation",
			input: model.TaskInput{Title: strPtr("Test Task")},
			setupMock: func(m *MockTaskRepository) {
				m.On("Create", mock.Anything, "Test Task").Return(model.Task{ID: 1, Title: "Test Task"}, nil)
			},
		},
		{
			name:      "missing title",
			input:     model.TaskInput{},
			setupMock: func(m *MockTaskRepository) {},
			wantMsg:   "Missing task title",
		},
		{
			name:      "blank title",
			input:     model.TaskInput{Title: strPtr("   ")},
			setupMock: func(m *MockTaskRepository) {},
			wantMsg:   "Missing task title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)
			service := NewTaskService(mockRepo)

			task, err := service.Create(context.Background(), tt.input)

			if tt.wantMsg != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantMsg, ve.Message)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(1), task.ID)
				assert.Equal(t, "Test Task", task.Title)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_List(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	expected := []model.Task{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}}
	mockRepo.On("List", mock.Anything).Return(expected, nil)

	service := NewTaskService(mockRepo)
	tasks, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, tasks)
	mockRepo.AssertExpectations(t)
}

func TestTaskService_Update(t *testing.T) {
	tests := []struct {
		name      string
		id        int64
		input     model.TaskInput
		setupMock func(*MockTaskRepository)
		wantErr   error
		wantMsg   string
	}{
		{
			name:  "successful update",
			id:    1,
			input: model.TaskInput{Title: strPtr("Updated")},
			setupMock: func(m *MockTaskRepository) {
				m.On("UpdateTitle", mock.Anything, int64(1), "Updated").Return(model.Task{ID: 1, Title: "Updated"}, nil)
			},
		},
		{
			name:  "task not found",
			id:    999,
			input: model.TaskInput{Title: strPtr("Updated")},
			setupMock: func(m *MockTaskRepository) {
				m.On("UpdateTitle", mock.Anything, int64(999), "Updated").Return(model.Task{}, repo.ErrorNotFound)
			},
			wantErr: ErrTaskNotFound,
		},
		{
			name:  "missing title on existing task",
			id:    1,
			input: model.TaskInput{},
			setupMock: func(m *MockTaskRepository) {
				m.On("Get", mock.Anything, int64(1)).Return(model.Task{ID: 1, Title: "Old"}, nil)
			},
			wantMsg: "Missing update content (title)",
		},
		{
			name:  "missing title on unknown task reports not found",
			id:    42,
			input: model.TaskInput{},
			setupMock: func(m *MockTaskRepository) {
				m.On("Get", mock.Anything, int64(42)).Return(model.Task{}, repo.ErrorNotFound)
			},
			wantErr: ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)
			service := NewTaskService(mockRepo)

			task, err := service.Update(context.Background(), tt.id, tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, repo.ErrorNotFound)
			case tt.wantMsg != "":
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantMsg, ve.Message)
			default:
				require.NoError(t, err)
				assert.Equal(t, "Updated", task.Title)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_Delete(t *testing.T) {
	t.Run("existing task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Delete", mock.Anything, int64(1)).Return(nil)

		err := NewTaskService(mockRepo).Delete(context.Background(), 1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Delete", mock.Anything, int64(7)).Return(repo.ErrorNotFound)

		err := NewTaskService(mockRepo).Delete(context.Background(), 7)

		assert.ErrorIs(t, err, ErrTaskNotFound)
	})

	t.Run("storage failure passes through", func(t *testing.T) {
		boom := errors.New("connection reset")
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Delete", mock.Anything, int64(1)).Return(boom)

		err := NewTaskService(mockRepo).Delete(context.Background(), 1)

		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, repo.ErrorNotFound)
	})
}

func TestTaskService_EnsureSeed(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("Seed", mock.Anything, model.Task{ID: 1, Title: "Initial Test Task (ID 1)"}).Return(true, nil)

	created, err := NewTaskService(mockRepo).EnsureSeed(context.Background(), 1, "Initial Test Task (ID 1)")

	require.NoError(t, err)
	assert.True(t, created)
	mockRepo.AssertExpectations(t)
}
