package models

// Population averages substituted for clinical parameters the patient
// did not supply. Values match the prediction model's training defaults.
const (
	DefaultAge        = 28.0
	DefaultBMI        = 22.0
	DefaultOGTT       = 120.0
	DefaultHDL        = 50.0
	DefaultHemoglobin = 12.0
)

// IntakeData is the complete set of clinical parameters sent to the
// prediction service. JSON names use the service's spaced aliases,
// including the historical "prenetal" spelling, which is part of the
// wire contract.
type IntakeData struct {
	Age                float64 `json:"Age" bson:"age"`
	Pregnancies        int     `json:"No of Pregnancy" bson:"noOfPregnancy"`
	PreviousGestation  float64 `json:"Gestation in previous Pregnancy" bson:"gestationInPreviousPregnancy"`
	BMI                float64 `json:"BMI" bson:"bmi"`
	OGTT               float64 `json:"OGTT" bson:"ogtt"`
	HDL                float64 `json:"HDL" bson:"hdl"`
	FamilyHistory      int     `json:"Family History" bson:"familyHistory"`
	PrenatalLoss       int     `json:"unexplained prenetal loss" bson:"unexplainedPrenatalLoss"`
	LargeChild         int     `json:"Large Child or Birth Default" bson:"largeChildOrBirthDefault"`
	PCOS               int     `json:"PCOS" bson:"pcos"`
	SystolicBP         float64 `json:"Sys BP" bson:"sysBP"`
	DiastolicBP        float64 `json:"Dia BP" bson:"diaBP"`
	Hemoglobin         float64 `json:"Hemoglobin" bson:"hemoglobin"`
	SedentaryLifestyle int     `json:"Sedentary Lifestyle" bson:"sedentaryLifestyle"`
	Prediabetes        int     `json:"Prediabetes" bson:"prediabetes"`
}

// PartialIntake is the request shape for intake submission. The five
// defaultable numerics are optional; everything else is taken as given.
type PartialIntake struct {
	Age                *float64 `json:"Age"`
	Pregnancies        int      `json:"No of Pregnancy"`
	PreviousGestation  float64  `json:"Gestation in previous Pregnancy"`
	BMI                *float64 `json:"BMI"`
	OGTT               *float64 `json:"OGTT"`
	HDL                *float64 `json:"HDL"`
	FamilyHistory      int      `json:"Family History"`
	PrenatalLoss       int      `json:"unexplained prenetal loss"`
	LargeChild         int      `json:"Large Child or Birth Default"`
	PCOS               int      `json:"PCOS"`
	SystolicBP         float64  `json:"Sys BP"`
	DiastolicBP        float64  `json:"Dia BP"`
	Hemoglobin         *float64 `json:"Hemoglobin"`
	SedentaryLifestyle int      `json:"Sedentary Lifestyle"`
	Prediabetes        int      `json:"Prediabetes"`
}

// ApplyDefaults completes a partial intake by substituting population
// averages for the absent numeric fields. Provided values pass through
// untouched.
func ApplyDefaults(p PartialIntake) IntakeData {
	pick := func(v *float64, def float64) float64 {
		if v != nil {
			return *v
		}
		return def
	}

	return IntakeData{
		Age:                pick(p.Age, DefaultAge),
		Pregnancies:        p.Pregnancies,
		PreviousGestation:  p.PreviousGestation,
		BMI:                pick(p.BMI, DefaultBMI),
		OGTT:               pick(p.OGTT, DefaultOGTT),
		HDL:                pick(p.HDL, DefaultHDL),
		FamilyHistory:      p.FamilyHistory,
		PrenatalLoss:       p.PrenatalLoss,
		LargeChild:         p.LargeChild,
		PCOS:               p.PCOS,
		SystolicBP:         p.SystolicBP,
		DiastolicBP:        p.DiastolicBP,
		Hemoglobin:         pick(p.Hemoglobin, DefaultHemoglobin),
		SedentaryLifestyle: p.SedentaryLifestyle,
		Prediabetes:        p.Prediabetes,
	}
}
