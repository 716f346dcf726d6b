package domain

// Text marshaling so IDs serialize as canonical UUID strings in JSON and
// BSON documents instead of raw byte arrays.

func (id HouseholdID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
func (id TankID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id RefillID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }
func (id ReportID) MarshalText() ([]byte, error)    { return []byte(id.String()), nil }

func (id *HouseholdID) UnmarshalText(b []byte) error {
	parsed, err := ParseHouseholdID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *TankID) UnmarshalText(b []byte) error {
	parsed, err := ParseTankID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *RefillID) UnmarshalText(b []byte) error {
	parsed, err := ParseRefillID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func (id *ReportID) UnmarshalText(b []byte) error {
	parsed, err := ParseReportID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
