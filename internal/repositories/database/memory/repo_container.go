package memory

import (
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
)

// NewRepositoryProvider returns repositories backed by process memory.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:  newMemoryAccountRepository(),
		CurrencyRepo: newMemoryCurrencyRepository(),
	}
}
