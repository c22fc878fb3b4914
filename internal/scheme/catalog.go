package scheme

// Detail is the expandable description attached to a benefit name.
type Detail struct {
	Description string `json:"description"`
	Limit       string `json:"limit"`
	Conditions  string `json:"conditions"`
}

// Benefit names. The names double as catalog keys, so schemes that share a
// benefit share the same entry and schemes with a differently scoped benefit
// (the section 40 variants) get their own.
const (
	BenefitSickness       = "sickness"
	BenefitMaternity      = "maternity"
	BenefitInvalidity     = "invalidity"
	BenefitDeath          = "death"
	BenefitOldAge         = "old age"
	BenefitUnemployment   = "unemployment"
	BenefitChildAllowance = "child allowance"

	BenefitInjuryCompensation     = "injury or sickness compensation"
	BenefitInvalidityCompensation = "invalidity compensation"
	BenefitFuneralGrant           = "funeral grant"
	BenefitOldAgeLumpSum          = "old-age lump sum"
	BenefitChildSupportGrant      = "child support grant"
)

var benefitsByScheme = map[Scheme][]string{
	Section33: {
		BenefitSickness, BenefitMaternity, BenefitInvalidity, BenefitDeath,
		BenefitOldAge, BenefitUnemployment, BenefitChildAllowance,
	},
	Section39: {
		BenefitSickness, BenefitMaternity, BenefitInvalidity, BenefitDeath,
		BenefitOldAge, BenefitChildAllowance,
	},
	Section40: {
		BenefitInjuryCompensation, BenefitInvalidity, BenefitDeath,
		BenefitOldAgeLumpSum,
	},
	Section40Option1: {
		BenefitInjuryCompensation, BenefitInvalidityCompensation,
		BenefitFuneralGrant,
	},
	Section40Option2: {
		BenefitInjuryCompensation, BenefitInvalidityCompensation,
		BenefitFuneralGrant, BenefitOldAgeLumpSum,
	},
	Section40Option3: {
		BenefitInjuryCompensation, BenefitInvalidityCompensation,
		BenefitFuneralGrant, BenefitOldAgeLumpSum, BenefitChildSupportGrant,
	},
	NotRegistered: {},
}

// BenefitsFor returns the ordered benefit names for a scheme. The sentinel
// (and any unknown scheme) yields an empty list.
func BenefitsFor(s Scheme) []string {
	benefits := benefitsByScheme[s]
	out := make([]string, len(benefits))
	copy(out, benefits)
	return out
}

var benefitDetails = map[string]Detail{
	BenefitSickness: {
		Description: "Covers medical treatment for injury or illness not caused by work.",
		Limit:       "Free treatment at the registered hospital network. Income replacement at 50% of wages for up to 90 days per leave, capped at 180 days per year (365 for chronic illness). Dental care up to 900 baht per year.",
		Conditions:  "Contributions paid for at least 3 of the 15 months before treatment.",
	},
	BenefitMaternity: {
		Description: "Childbirth grant, antenatal care costs, and paid maternity leave.",
		Limit:       "Lump sum of 15,000 baht per delivery. Maternity leave pay at 50% of wages for 90 days, at most twice. Antenatal care up to 1,500 baht over 5 visits.",
		Conditions:  "Contributions paid for at least 5 of the 15 months before the month of delivery.",
	},
	BenefitInvalidity: {
		Description: "Income replacement and medical costs after disability.",
		Limit:       "Severe disability: 50% of wages monthly for life. Partial disability: per the published schedule. Private hospital outpatient care up to 2,000 baht per month, inpatient up to 4,000 baht.",
		Conditions:  "Contributions paid for at least 3 of the 15 months before the disability.",
	},
	BenefitDeath: {
		Description: "Funeral grant paid to the person arranging the funeral.",
		Limit:       "50,000 baht funeral grant. Survivor allowance of 2 months of average wages after 36 months of contributions, 6 months after 120.",
		Conditions:  "Contributions paid for at least 1 of the 6 months before death.",
	},
	BenefitOldAge: {
		Description: "Lump sum or lifetime monthly pension, depending on contribution length.",
		Limit:       "Under 180 months of contributions: lump sum refund. 180 months: pension at 20% of the last 60 months' average wage, plus 1.5% per additional 12 months.",
		Conditions:  "Age 55 and no longer an insured person.",
	},
	BenefitUnemployment: {
		Description: "Income replacement after dismissal, resignation, or force majeure.",
		Limit:       "Dismissal: 50% of wages (capped at a 15,000 baht base) for up to 180 days per year. Resignation: 30% for up to 90 days.",
		Conditions:  "Contributions paid for at least 6 of the 15 months before unemployment, with registration at the employment office.",
	},
	BenefitChildAllowance: {
		Description: "Flat monthly allowance per legal child.",
		Limit:       "800 baht per month per child, up to 3 children, from birth to age 6.",
		Conditions:  "Contributions paid for at least 12 of the 36 months before entitlement.",
	},
	BenefitInjuryCompensation: {
		Description: "Income replacement for illness or injury not caused by work.",
		Limit:       "300 baht per hospitalised day; 50 baht per certified rest day without admission, at most 3 times per year; combined cap of 30 days per year.",
		Conditions:  "Contributions paid for at least 3 of the 4 months before the illness. Treatment itself uses the universal coverage scheme.",
	},
	BenefitInvalidityCompensation: {
		Description: "Monthly income replacement after disability.",
		Limit:       "Monthly payment for 15 years; a 25,000 baht funeral grant if the recipient dies during payment.",
		Conditions:  "500-1,000 baht per month depending on how many of the preceding months carried contributions.",
	},
	BenefitFuneralGrant: {
		Description: "Funeral and survivor grant on death.",
		Limit:       "25,000 baht funeral grant, plus 8,000 baht survivor grant after 60 months of contributions.",
		Conditions:  "Contributions paid for at least 6 of the 12 months before death; relaxed to 1 of 6 months for accidental death.",
	},
	BenefitOldAgeLumpSum: {
		Description: "One-time payment at age 60 when insured status ends.",
		Limit:       "50 baht of each monthly contribution is saved and returned with annual interest; voluntary top-ups allowed.",
		Conditions:  "Age 60 and no longer an insured person. Options 2 and 3 may save up to 1,000 baht extra per month.",
	},
	BenefitChildSupportGrant: {
		Description: "Monthly child allowance, option 3 only.",
		Limit:       "200 baht per month per child, up to 2 children, from birth to age 6.",
		Conditions:  "Contributions paid for at least 24 of the 36 months before entitlement, and every month while receiving.",
	},
}

// Option 3 carries higher rates for a few shared benefit names.
var option3Details = map[string]Detail{
	BenefitInjuryCompensation: {
		Description: "Income replacement for illness or injury not caused by work.",
		Limit:       "300 baht per hospitalised day; 200 baht per certified rest day of 3 days or more; combined cap of 90 days per year.",
		Conditions:  "Contributions paid for at least 3 of the 4 months before the illness.",
	},
	BenefitInvalidityCompensation: {
		Description: "Monthly income replacement after disability.",
		Limit:       "Monthly payment for life; a 50,000 baht funeral grant if the recipient dies during payment.",
		Conditions:  "500-1,000 baht per month depending on how many of the preceding months carried contributions.",
	},
	BenefitFuneralGrant: {
		Description: "Funeral grant on death.",
		Limit:       "50,000 baht funeral grant paid to the person arranging the funeral.",
		Conditions:  "Contributions paid for at least 6 of the 12 months before death.",
	},
	BenefitOldAgeLumpSum: {
		Description: "One-time payment at age 60 when insured status ends.",
		Limit:       "150 baht of each monthly contribution is saved and returned with annual interest; voluntary top-ups allowed.",
		Conditions:  "Age 60 and no longer an insured person.",
	},
}

// DetailFor looks up the detail text for a benefit name. A missing entry is
// not an error; the benefit simply renders without an expandable detail.
func DetailFor(name string) (Detail, bool) {
	d, ok := benefitDetails[name]
	return d, ok
}

// DetailForScheme is DetailFor with scheme-specific overrides applied;
// section 40 option 3 pays higher rates for some shared benefit names.
func DetailForScheme(s Scheme, name string) (Detail, bool) {
	if s == Section40Option3 {
		if d, ok := option3Details[name]; ok {
			return d, true
		}
	}
	return DetailFor(name)
}
