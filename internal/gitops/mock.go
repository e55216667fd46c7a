package gitops

// MockOps is a mock implementation of Ops for testing
type MockOps struct {
	// Function stubs that can be set in tests
	IsInsideWorkTreeFunc      func() (bool, error)
	HasUncommittedChangesFunc func() (bool, error)
	CurrentBranchFunc         func() (string, error)
	LocalBranchExistsFunc     func(name string) (bool, error)
	RemoteBranchExistsFunc    func(name string) (bool, error)
	SwitchToFunc              func(name string) error
	CreateAndSwitchToFunc     func(name string) error
}

// NewMockOps creates a new MockOps describing a clean repository checked
// out on main where no other branch exists.
func NewMockOps() *MockOps {
	return &MockOps{
		IsInsideWorkTreeFunc: func() (bool, error) {
			return true, nil
		},
		HasUncommittedChangesFunc: func() (bool, error) {
			return false, nil
		},
		CurrentBranchFunc: func() (string, error) {
			return "main", nil
		},
		LocalBranchExistsFunc: func(name string) (bool, error) {
			return false, nil
		},
		RemoteBranchExistsFunc: func(name string) (bool, error) {
			return false, nil
		},
		SwitchToFunc: func(name string) error {
			return nil
		},
		CreateAndSwitchToFunc: func(name string) error {
			return nil
		},
	}
}

// IsInsideWorkTree calls the mock function
func (m *MockOps) IsInsideWorkTree() (bool, error) {
	return m.IsInsideWorkTreeFunc()
}

// HasUncommittedChanges calls the mock function
func (m *MockOps) HasUncommittedChanges() (bool, error) {
	return m.HasUncommittedChangesFunc()
}

// CurrentBranch calls the mock function
func (m *MockOps) CurrentBranch() (string, error) {
	return m.CurrentBranchFunc()
}

// LocalBranchExists calls the mock function
func (m *MockOps) LocalBranchExists(name string) (bool, error) {
	return m.LocalBranchExistsFunc(name)
}

// RemoteBranchExists calls the mock function
func (m *MockOps) RemoteBranchExists(name string) (bool, error) {
	return m.RemoteBranchExistsFunc(name)
}

// SwitchTo calls the mock function
func (m *MockOps) SwitchTo(name string) error {
	return m.SwitchToFunc(name)
}

// CreateAndSwitchTo calls the mock function
func (m *MockOps) CreateAndSwitchTo(name string) error {
	return m.CreateAndSwitchToFunc(name)
}
