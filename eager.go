package djinject

// forceEager walks the merged tree depth-first in defined key order and
// resolves every factory tagged eager before Inject returns. Groups are
// materialized during the walk only when their subtree holds at least one
// eager factory; everything else stays untouched. The first failure aborts
// the walk and propagates.
func forceEager(s *node) error {
	for _, key := range s.module.keys {
		switch def := s.module.entries[key].(type) {
		case Factory:
			if !def.eager {
				continue
			}

			if _, err := s.resolve(key, &resolveChain{}); err != nil {
				return err
			}

		case *Module:
			if !hasEager(def) {
				continue
			}

			value, err := s.resolve(key, &resolveChain{})
			if err != nil {
				return err
			}

			if err := forceEager(value.(*Container).state); err != nil {
				return err
			}
		}
	}

	return nil
}

func hasEager(m *Module) bool {
	for _, key := range m.keys {
		switch def := m.entries[key].(type) {
		case Factory:
			if def.eager {
				return true
			}
		case *Module:
			if hasEager(def) {
				return true
			}
		}
	}

	return false
}
