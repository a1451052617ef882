package core

import "time"

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

const (
	ClassificationLimited       = "Limited"
	ClassificationBasic         = "Basic"
	ClassificationIntermediate  = "Intermediate"
	ClassificationComprehensive = "Comprehensive"
)

var classificationLevels = map[string]int{
	ClassificationLimited:       1,
	ClassificationBasic:         2,
	ClassificationIntermediate:  3,
	ClassificationComprehensive: 4,
}

// ClassificationLevel maps a classification label to its ordinal tier.
// Unknown labels rank below Limited.
func ClassificationLevel(name string) int {
	return classificationLevels[name]
}

type Caregiver struct {
	ID                        string     `json:"id"`
	AgencyID                  string     `json:"agencyId"`
	FirstName                 string     `json:"firstName"`
	LastName                  string     `json:"lastName"`
	Email                     string     `json:"email"`
	Phone                     string     `json:"phone"`
	Status                    string     `json:"status"`
	Classification            string     `json:"classification"`
	Certifications            []string   `json:"certifications"`
	DriverLicense             bool       `json:"driverLicense"`
	BackgroundCheckDate       *time.Time `json:"backgroundCheckDate,omitempty"`
	BackgroundCheckRenewalDue *time.Time `json:"backgroundCheckRenewalDue,omitempty"`
	OrientationDate           *time.Time `json:"orientationDate,omitempty"`
	CreatedAt                 time.Time  `json:"createdAt"`
	UpdatedAt                 time.Time  `json:"updatedAt"`
}

func (c Caregiver) HasCertification(name string) bool {
	for _, cert := range c.Certifications {
		if cert == name {
			return true
		}
	}
	return false
}

func (c Caregiver) FullName() string {
	return c.FirstName + " " + c.LastName
}

type Client struct {
	ID             string    `json:"id"`
	AgencyID       string    `json:"agencyId"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Classification string    `json:"classification"`
	CanSelfDirect  bool      `json:"canSelfDirect"`
	Address        string    `json:"address"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (c Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Assignment links a caregiver to a client. At most one link per pair
// is flagged primary.
type Assignment struct {
	ID          string    `json:"id"`
	ClientID    string    `json:"clientId"`
	CaregiverID string    `json:"caregiverId"`
	IsPrimary   bool      `json:"isPrimary"`
	CreatedAt   time.Time `json:"createdAt"`
}
