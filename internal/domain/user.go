package domain

// User is a credentialed identity. Username and email are each globally unique.
type User struct {
	ID               string `json:"_id" bson:"_id"`
	Username         string `json:"username" bson:"username"`
	Email            string `json:"email" bson:"email"`
	PasswordHash     string `json:"-" bson:"password"`
	HasReceivedEmail bool   `json:"hasReceivedEmail" bson:"hasReceivedEmail"`
}

// Profile holds the personal details a user fills in after signup.
// Email is globally unique across profiles.
type Profile struct {
	ID                   string `json:"_id" bson:"_id"`
	FirstName            string `json:"firstName" bson:"firstName"`
	MiddleName           string `json:"middleName,omitempty" bson:"middleName,omitempty"`
	LastName             string `json:"lastName" bson:"lastName"`
	Gender               string `json:"gender" bson:"gender"`
	MaritalStatus        string `json:"maritalStatus" bson:"maritalStatus"`
	DateOfBirth          string `json:"dateOfBirth" bson:"dateOfBirth"`
	Occupation           string `json:"occupation" bson:"occupation"`
	PhoneNumber          string `json:"phoneNumber" bson:"phoneNumber"`
	City                 string `json:"city" bson:"city"`
	Email                string `json:"email" bson:"email"`
	IncomeStability      string `json:"incomeStability" bson:"incomeStability"`
	InvestmentPercentage string `json:"investmentPercentage" bson:"investmentPercentage"`
	RiskAppetite         string `json:"riskAppetite" bson:"riskAppetite"`
	UserID               string `json:"userId" bson:"userId"`
}

// MissingFields returns the json names of required profile fields that are empty.
func (p Profile) MissingFields() []string {
	required := []struct {
		name  string
		value string
	}{
		{"firstName", p.FirstName},
		{"lastName", p.LastName},
		{"gender", p.Gender},
		{"maritalStatus", p.MaritalStatus},
		{"dateOfBirth", p.DateOfBirth},
		{"occupation", p.Occupation},
		{"phoneNumber", p.PhoneNumber},
		{"city", p.City},
		{"email", p.Email},
		{"incomeStability", p.IncomeStability},
		{"investmentPercentage", p.InvestmentPercentage},
		{"riskAppetite", p.RiskAppetite},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
