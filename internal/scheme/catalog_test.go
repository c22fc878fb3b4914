package scheme

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBenefitsForOrderingAndSentinel(t *testing.T) {
	b33 := BenefitsFor(Section33)
	require.Len(t, b33, 7)
	assert.Equal(t, BenefitSickness, b33[0])
	assert.Equal(t, BenefitChildAllowance, b33[6])

	// Section 39 drops unemployment but keeps the rest in order.
	b39 := BenefitsFor(Section39)
	require.Len(t, b39, 6)
	assert.NotContains(t, b39, BenefitUnemployment)

	// Option lists grow monotonically from option 1 to 3.
	assert.Len(t, BenefitsFor(Section40Option1), 3)
	assert.Len(t, BenefitsFor(Section40Option2), 4)
	assert.Len(t, BenefitsFor(Section40Option3), 5)

	assert.Empty(t, BenefitsFor(NotRegistered))
	assert.Empty(t, BenefitsFor(Scheme("unknown")))
}

func TestBenefitsForReturnsCopy(t *testing.T) {
	a := BenefitsFor(Section33)
	a[0] = "mutated"
	assert.Equal(t, BenefitSickness, BenefitsFor(Section33)[0])
}

func TestEveryListedBenefitHasDetail(t *testing.T) {
	for _, s := range All() {
		for _, name := range BenefitsFor(s) {
			_, ok := DetailForScheme(s, name)
			assert.True(t, ok, "scheme %q benefit %q has no detail", s, name)
		}
	}
}

func TestDetailForUnknownNameIsNotAnError(t *testing.T) {
	_, ok := DetailFor("no such benefit")
	assert.False(t, ok)
}

func TestOption3Overrides(t *testing.T) {
	base, ok := DetailForScheme(Section40Option2, BenefitFuneralGrant)
	require.True(t, ok)
	opt3, ok := DetailForScheme(Section40Option3, BenefitFuneralGrant)
	require.True(t, ok)

	assert.Contains(t, base.Limit, "25,000")
	assert.Contains(t, opt3.Limit, "50,000")

	// Benefits without an override fall through to the shared entry.
	shared, ok := DetailForScheme(Section40Option3, BenefitChildSupportGrant)
	require.True(t, ok)
	assert.Contains(t, shared.Limit, "200 baht")
}
