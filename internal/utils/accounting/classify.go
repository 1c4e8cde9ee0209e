package accounting

import "github.com/nairabooks/ledger_backend/internal/core/domain"

// Classifier decides whether a balance-sheet account is current or
// non-current. The split is a reporting convention, not a law, so it is
// injectable rather than hard-coded into the statement builder.
type Classifier interface {
	IsCurrent(accountType domain.AccountType, code string) bool
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(accountType domain.AccountType, code string) bool

func (f ClassifierFunc) IsCurrent(accountType domain.AccountType, code string) bool {
	return f(accountType, code)
}

// CodePrefixClassifier is the default convention: account codes beginning
// 10-14 are current assets and codes beginning 20-24 are current
// liabilities; everything else is non-current. This approximates maturity by
// chart position, matching the seeded default chart of accounts.
func CodePrefixClassifier() Classifier {
	currentAssetPrefixes := map[string]bool{"10": true, "11": true, "12": true, "13": true, "14": true}
	currentLiabilityPrefixes := map[string]bool{"20": true, "21": true, "22": true, "23": true, "24": true}
	return ClassifierFunc(func(accountType domain.AccountType, code string) bool {
		if len(code) < 2 {
			return false
		}
		prefix := code[:2]
		switch accountType {
		case domain.Asset:
			return currentAssetPrefixes[prefix]
		case domain.Liability:
			return currentLiabilityPrefixes[prefix]
		default:
			return false
		}
	})
}
