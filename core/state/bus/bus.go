package bus

// Bus lets state stores reach shared collaborators without importing each
// other.
type Bus struct {
	checker Checker
	ledgers Ledgers
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) SetChecker(checker Checker) {
	b.checker = checker
}

func (b *Bus) Checker() Checker {
	return b.checker
}

func (b *Bus) SetLedgers(ledgers Ledgers) {
	b.ledgers = ledgers
}

func (b *Bus) Ledgers() Ledgers {
	return b.ledgers
}
