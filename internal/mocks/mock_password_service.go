package mocks

// MockPasswordService implements domain.PasswordService for testing. The
// default behaviors hash by prefixing and accept any matching pair.
type MockPasswordService struct {
	HashFunc          func(password string) (string, error)
	VerifyFunc        func(hashedPassword, password string) bool
	CheckStrengthFunc func(password string) []string
}

// NewMockPasswordService creates a new MockPasswordService with default
// behaviors.
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed_"+password
}

func (m *MockPasswordService) CheckStrength(password string) []string {
	if m.CheckStrengthFunc != nil {
		return m.CheckStrengthFunc(password)
	}
	return nil
}
