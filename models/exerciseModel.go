package models

import (
	"encoding/json"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateLayout renders exercise dates as "Mon Jan 01 1990".
const DateLayout = "Mon Jan 02 2006"

type Exercise struct {
	ID          primitive.ObjectID `json:"-" bson:"_id"`
	ExerciseID  string             `json:"exercise_id" bson:"exercise_id"`
	UserID      string             `json:"user_id" bson:"user_id" validate:"required"`
	Description string             `json:"description" bson:"description"`
	Duration    Minutes            `json:"duration" bson:"duration"`
	Date        time.Time          `json:"date" bson:"date"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
}

// Minutes is a coerced exercise duration. Values that failed to coerce are NaN
// and encode as JSON null.
type Minutes float64

func (m Minutes) MarshalJSON() ([]byte, error) {
	f := float64(m)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// LooseString binds a body field whatever its JSON type. Strings are unquoted,
// null is empty and anything else keeps its literal text, so {"duration": 30}
// and duration=30 bind the same way.
type LooseString string

func (s *LooseString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	*s = LooseString(data)
	return nil
}

func (s LooseString) String() string {
	return string(s)
}
