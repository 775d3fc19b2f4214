package backend

import (
	"context"
	"fmt"
	"sync"

	"github.com/lvillar/hospreport/reports"
	"github.com/lvillar/hospreport/stats"
)

// Memory is an in-process Source for tests and offline rendering.
type Memory struct {
	mu          sync.RWMutex
	equipment   map[string]reports.Equipment
	trainings   map[string]reports.Training
	technicians map[string]stats.Technician
}

// NewMemory returns an empty Memory source.
func NewMemory() *Memory {
	return &Memory{
		equipment:   make(map[string]reports.Equipment),
		trainings:   make(map[string]reports.Training),
		technicians: make(map[string]stats.Technician),
	}
}

// PutEquipment stores e under its ID.
func (m *Memory) PutEquipment(e reports.Equipment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.equipment[fmt.Sprint(e.ID)] = e
}

// PutTraining stores t under its ID.
func (m *Memory) PutTraining(t reports.Training) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trainings[fmt.Sprint(t.ID)] = t
}

// PutTechnician stores t under its ID.
func (m *Memory) PutTechnician(t stats.Technician) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.technicians[fmt.Sprint(t.ID)] = t
}

func (m *Memory) Equipment(ctx context.Context, id string) (reports.Equipment, error) {
	return lookup(ctx, &m.mu, m.equipment, id)
}

func (m *Memory) Training(ctx context.Context, id string) (reports.Training, error) {
	return lookup(ctx, &m.mu, m.trainings, id)
}

func (m *Memory) TechnicianOrders(ctx context.Context, id string) (stats.Technician, error) {
	return lookup(ctx, &m.mu, m.technicians, id)
}

func lookup[T any](ctx context.Context, mu *sync.RWMutex, records map[string]T, id string) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	mu.RLock()
	defer mu.RUnlock()
	v, ok := records[id]
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return v, nil
}
