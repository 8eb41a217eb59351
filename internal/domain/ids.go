package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// looseID decodes an id that a backend may send as a JSON string or number
type looseID string

func (id *looseID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = looseID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or a number, got %s", data)
	}
	*id = looseID(n.String())
	return nil
}

// UnmarshalJSON accepts numeric ids and references as well as strings
func (tc *TestCase) UnmarshalJSON(data []byte) error {
	type plain TestCase
	aux := struct {
		*plain
		ID             looseID `json:"id"`
		TestSuiteID    looseID `json:"testSuiteId"`
		AssignedUserID looseID `json:"assignedUserId"`
	}{
		plain:          (*plain)(tc),
		ID:             looseID(tc.ID),
		TestSuiteID:    looseID(tc.TestSuiteID),
		AssignedUserID: looseID(tc.AssignedUserID),
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	tc.ID = string(aux.ID)
	tc.TestSuiteID = string(aux.TestSuiteID)
	tc.AssignedUserID = string(aux.AssignedUserID)
	return nil
}

// UnmarshalJSON accepts a numeric id as well as a string
func (ts *TestSuite) UnmarshalJSON(data []byte) error {
	type plain TestSuite
	aux := struct {
		*plain
		ID looseID `json:"id"`
	}{plain: (*plain)(ts), ID: looseID(ts.ID)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ts.ID = string(aux.ID)
	return nil
}

// UnmarshalJSON accepts a numeric id as well as a string
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	aux := struct {
		*plain
		ID looseID `json:"id"`
	}{plain: (*plain)(u), ID: looseID(u.ID)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u.ID = string(aux.ID)
	return nil
}
