package referenceparser

import "github.com/giygas/medtext-analyzer/referenceparser/entities"

// Compiled-in reference data. Short aliases are avoided on purpose: matching is
// plain substring search, so a three letter alias would hit ordinary words.
var defaultDrugs = []entities.DrugEntry{
	{Name: "Aspirin", Aliases: []string{"acetylsalicylic acid", "ecotrin"}, Category: "NSAIDs"},
	{Name: "Warfarin", Aliases: []string{"coumadin", "jantoven"}, Category: "Anticoagulants"},
	{Name: "Ibuprofen", Aliases: []string{"advil", "motrin"}, Category: "NSAIDs"},
	{Name: "Naproxen", Aliases: []string{"aleve", "naprosyn"}, Category: "NSAIDs"},
	{Name: "Acetaminophen", Aliases: []string{"paracetamol", "tylenol"}, Category: "Analgesics"},
	{Name: "Lisinopril", Aliases: []string{"zestril", "prinivil"}, Category: "ACE Inhibitors"},
	{Name: "Metformin", Aliases: []string{"glucophage"}, Category: "Antidiabetics"},
	{Name: "Atorvastatin", Aliases: []string{"lipitor"}, Category: "Statins"},
	{Name: "Simvastatin", Aliases: []string{"zocor"}, Category: "Statins"},
	{Name: "Amoxicillin", Aliases: []string{"amoxil"}, Category: "Antibiotics"},
	{Name: "Clarithromycin", Aliases: []string{"biaxin"}, Category: "Macrolide Antibiotics"},
	{Name: "Sertraline", Aliases: []string{"zoloft"}, Category: "SSRIs"},
	{Name: "Fluoxetine", Aliases: []string{"prozac"}, Category: "SSRIs"},
	{Name: "Tramadol", Aliases: []string{"ultram"}, Category: "Opioids"},
	{Name: "Omeprazole", Aliases: []string{"prilosec"}, Category: "Proton Pump Inhibitors"},
	{Name: "Clopidogrel", Aliases: []string{"plavix"}, Category: "Antiplatelets"},
	{Name: "Digoxin", Aliases: []string{"lanoxin"}, Category: "Cardiac Glycosides"},
	{Name: "Amiodarone", Aliases: []string{"cordarone", "pacerone"}, Category: "Antiarrhythmics"},
	{Name: "Spironolactone", Aliases: []string{"aldactone"}, Category: "Potassium-Sparing Diuretics"},
	{Name: "Levothyroxine", Aliases: []string{"synthroid", "levoxyl"}, Category: "Thyroid Hormones"},
}

var defaultInteractions = []entities.InteractionRule{
	{Participants: []string{"Warfarin", "Aspirin"}, Description: "Increased risk of bleeding", Severity: entities.SeverityHigh},
	{Participants: []string{"Warfarin", "Ibuprofen"}, Description: "NSAIDs potentiate the anticoagulant effect of warfarin and increase bleeding risk", Severity: entities.SeverityHigh},
	{Participants: []string{"Warfarin", "Naproxen"}, Description: "Combined anticoagulant and NSAID use raises gastrointestinal bleeding risk", Severity: entities.SeverityHigh},
	{Participants: []string{"Warfarin", "Amiodarone"}, Description: "Amiodarone inhibits warfarin metabolism and raises INR", Severity: entities.SeverityHigh},
	{Participants: []string{"Aspirin", "Ibuprofen"}, Description: "Ibuprofen may reduce the cardioprotective effect of aspirin", Severity: entities.SeverityMedium},
	{Participants: []string{"Lisinopril", "Spironolactone"}, Description: "Risk of hyperkalemia", Severity: entities.SeverityHigh},
	{Participants: []string{"Lisinopril", "Ibuprofen"}, Description: "NSAIDs may blunt the antihypertensive effect and impair renal function", Severity: entities.SeverityMedium},
	{Participants: []string{"statin", "Clarithromycin"}, Description: "Clarithromycin raises statin exposure and the risk of myopathy", Severity: entities.SeverityHigh},
	{Participants: []string{"Sertraline", "Fluoxetine", "Tramadol"}, Description: "Risk of serotonin syndrome", Severity: entities.SeverityHigh},
	{Participants: []string{"Digoxin", "Amiodarone"}, Description: "Amiodarone increases digoxin concentration", Severity: entities.SeverityHigh},
	{Participants: []string{"Digoxin", "Clarithromycin"}, Description: "Clarithromycin may increase digoxin levels", Severity: entities.SeverityMedium},
	{Participants: []string{"Clopidogrel", "Omeprazole"}, Description: "Omeprazole may reduce the antiplatelet effect of clopidogrel", Severity: entities.SeverityMedium},
	{Participants: []string{"Levothyroxine", "Omeprazole"}, Description: "Reduced levothyroxine absorption", Severity: entities.SeverityLow},
	{Participants: []string{"Acetaminophen", "Warfarin"}, Description: "Regular acetaminophen use may increase INR", Severity: entities.SeverityLow},
	{Participants: []string{"Amoxicillin", "Warfarin"}, Description: "Antibiotics may enhance the anticoagulant effect", Severity: entities.SeverityLow},
	{Participants: []string{"Metformin", "Lisinopril"}, Description: "ACE inhibitors may increase the hypoglycemic effect", Severity: entities.SeverityLow},
}

var defaultSideEffects = []entities.SideEffectRule{
	{Effect: "Gastrointestinal bleeding", Drugs: []string{"Aspirin", "Ibuprofen", "Naproxen", "Warfarin"}, Frequency: entities.FrequencyUncommon},
	{Effect: "Stomach upset", Drugs: []string{"Aspirin", "Ibuprofen", "Naproxen"}, Frequency: entities.FrequencyCommon},
	{Effect: "Bruising", Drugs: []string{"Warfarin", "Clopidogrel", "Aspirin"}, Frequency: entities.FrequencyCommon},
	{Effect: "Dry cough", Drugs: []string{"Lisinopril"}, Frequency: entities.FrequencyCommon},
	{Effect: "Hyperkalemia", Drugs: []string{"Lisinopril", "Spironolactone"}, Frequency: entities.FrequencyUncommon},
	{Effect: "Lactic acidosis", Drugs: []string{"Metformin"}, Frequency: entities.FrequencyRare},
	{Effect: "Diarrhea", Drugs: []string{"Metformin", "Amoxicillin", "Clarithromycin"}, Frequency: entities.FrequencyCommon},
	{Effect: "Muscle pain", Drugs: []string{"statin"}, Frequency: entities.FrequencyCommon},
	{Effect: "Rhabdomyolysis", Drugs: []string{"statin"}, Frequency: entities.FrequencyRare},
	{Effect: "Nausea", Drugs: []string{"Sertraline", "Fluoxetine", "Tramadol", "Metformin"}, Frequency: entities.FrequencyCommon},
	{Effect: "Insomnia", Drugs: []string{"Sertraline", "Fluoxetine"}, Frequency: entities.FrequencyCommon},
	{Effect: "Serotonin syndrome", Drugs: []string{"Tramadol", "Sertraline", "Fluoxetine"}, Frequency: entities.FrequencyRare},
	{Effect: "Liver damage", Drugs: []string{"Acetaminophen", "Amiodarone"}, Frequency: entities.FrequencyRare},
	{Effect: "Thyroid dysfunction", Drugs: []string{"Amiodarone"}, Frequency: entities.FrequencyUncommon},
	{Effect: "Palpitations", Drugs: []string{"Levothyroxine"}, Frequency: entities.FrequencyUncommon},
	{Effect: "Skin rash", Drugs: []string{"Amoxicillin"}, Frequency: entities.FrequencyCommon},
	{Effect: "Dizziness", Drugs: []string{"Lisinopril", "Tramadol"}, Frequency: entities.FrequencyCommon},
	{Effect: "Headache", Drugs: []string{"Omeprazole", "Sertraline"}, Frequency: entities.FrequencyCommon},
	{Effect: "Visual disturbances", Drugs: []string{"Digoxin"}, Frequency: entities.FrequencyUncommon},
	{Effect: "Drowsiness", Drugs: []string{"Tramadol"}, Frequency: entities.FrequencyCommon},
}

// DefaultTables returns a fresh copy of the compiled-in tables.
// Callers may keep or modify the copy without affecting later calls.
func DefaultTables() entities.Tables {
	return entities.Tables{
		Drugs:        cloneDrugs(defaultDrugs),
		Interactions: cloneInteractions(defaultInteractions),
		SideEffects:  cloneSideEffects(defaultSideEffects),
	}
}

func cloneDrugs(in []entities.DrugEntry) []entities.DrugEntry {
	out := make([]entities.DrugEntry, len(in))
	for i, d := range in {
		d.Aliases = append([]string(nil), d.Aliases...)
		out[i] = d
	}
	return out
}

func cloneInteractions(in []entities.InteractionRule) []entities.InteractionRule {
	out := make([]entities.InteractionRule, len(in))
	for i, r := range in {
		r.Participants = append([]string(nil), r.Participants...)
		out[i] = r
	}
	return out
}

func cloneSideEffects(in []entities.SideEffectRule) []entities.SideEffectRule {
	out := make([]entities.SideEffectRule, len(in))
	for i, r := range in {
		r.Drugs = append([]string(nil), r.Drugs...)
		out[i] = r
	}
	return out
}
