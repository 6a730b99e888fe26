package diskvstore

// writeRaw пишет произвольные байты по ключу, чтобы испортить данные
func (s *Store) writeRaw(key string, data []byte) error {
	return s.d.Write(key, data)
}
