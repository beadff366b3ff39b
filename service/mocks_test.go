package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"realty-agent/domain"
)

type MockCalculationRepository struct {
	SaveCalled bool
	ForceError bool
	Saved      []domain.Calculation
}

func (m *MockCalculationRepository) Save(_ context.Context, calc domain.Calculation) error {
	m.SaveCalled = true
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, calc)
	return nil
}

func (m *MockCalculationRepository) Count(_ context.Context) (int, error) {
	return len(m.Saved), nil
}

type MockBlobStore struct {
	mu         sync.Mutex
	Objects    map[string][]byte
	Types      map[string]string
	ForceError bool
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{
		Objects: make(map[string][]byte),
		Types:   make(map[string]string),
	}
}

func (m *MockBlobStore) Put(_ context.Context, bucket, name, contentType string, r io.Reader) (string, error) {
	if m.ForceError {
		return "", errors.New("blob error")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[bucket+"/"+name] = data
	m.Types[bucket+"/"+name] = contentType
	return "https://cdn.test/" + bucket + "/" + name, nil
}

type MockNotifier struct {
	Leads    []domain.Lead
	NewLeads []int
}

func (m *MockNotifier) LeadCreated(_ context.Context, lead domain.Lead, newLeads int) {
	m.Leads = append(m.Leads, lead)
	m.NewLeads = append(m.NewLeads, newLeads)
}
