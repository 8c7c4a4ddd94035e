package state

// MemoryKV keeps values in process memory. Err, when set, is returned from
// every call so tests can simulate an unavailable backend.
type MemoryKV struct {
	values map[string]string
	Err    error
	Writes int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: map[string]string{}}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	if m.Err != nil {
		return "", false, m.Err
	}
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	if m.Err != nil {
		return m.Err
	}
	m.values[key] = value
	m.Writes++
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	if m.Err != nil {
		return m.Err
	}
	delete(m.values, key)
	return nil
}
