/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package labs

// DefaultDefinitions returns the built-in reference table in panel order,
// which is also the order results are reported in. Every test searches the
// whole text on its own, so an alias printed inside another test's name
// (BLOOD UREA inside BLOOD UREA NITROGEN, LDL-CHOLESTEROL inside
// VLDL-CHOLESTEROL) binds the shorter test to the longer one's value when
// only the longer name appears.
func DefaultDefinitions() []TestDefinition {
	return []TestDefinition{
		// ===== DIABETES =====
		{
			Name: "Glucose (Fasting)", SimpleName: "Blood Sugar Level", Unit: "mg/dL",
			Min: 70, Max: 110,
			Explanation:  "Energy source. High = Diabetes risk.",
			LowSymptoms:  "Shakiness, sweating, confusion, sudden hunger.",
			HighSymptoms: "Frequent urination, excessive thirst, blurred vision, fatigue.",
			Aliases:      []string{"BLOOD SUGAR FASTING", "FASTING BLOOD SUGAR", "Glucose-F"},
		},

		// ===== COMPLETE BLOOD COUNT =====
		{
			Name: "Hemoglobin", SimpleName: "Oxygen Carrier Protein", Unit: "g/dL",
			Min: 13.0, Max: 17.0,
			Explanation:  "Carries oxygen. Low = Anemia.",
			LowSymptoms:  "Tiredness, weakness, pale skin, shortness of breath.",
			HighSymptoms: "Headache, dizziness, flushed skin; may follow dehydration or smoking.",
			Aliases:      []string{"HAEMOGLOBIN", "HB", "Hemoglobin"},
		},
		{
			Name: "RBC Count", SimpleName: "Red Blood Cell Count", Unit: "mil/uL",
			Min: 4.5, Max: 5.5,
			Explanation: "Number of red cells.",
			Aliases:     []string{"RED BLOOD CELL COUNT", "RBC"},
		},
		{
			Name: "Hematocrit (PCV)", SimpleName: "Packed Cell Volume", Unit: "%",
			Min: 40.0, Max: 50.0,
			Explanation: "Percentage of blood that is cells.",
			Aliases:     []string{"PACKED CELL VOLUME", "HCT", "PCV"},
		},
		{
			Name: "MCV", SimpleName: "Avg RBC Size", Unit: "fL",
			Min: 83.0, Max: 101.0,
			Explanation: "Size of red cells. High = B12 deficiency.",
			Aliases:     []string{"MCV", "Mean Corpuscular Volume"},
		},
		{
			Name: "MCH", SimpleName: "Avg Hemoglobin Amount", Unit: "pg",
			Min: 27.0, Max: 32.0,
			Explanation: "Weight of Hb in cells.",
			Aliases:     []string{"MCH", "Mean Corpuscular Hb"},
		},
		{
			Name: "MCHC", SimpleName: "Avg Hemoglobin Concentration", Unit: "g/dL",
			Min: 31.5, Max: 34.5,
			Explanation: "Concentration of Hb.",
			Aliases:     []string{"MCHC", "Mean Corpuscular Hb Concn"},
		},
		{
			Name: "RDW", SimpleName: "RBC Size Variation", Unit: "%",
			Min: 11.6, Max: 14.0,
			Explanation: "Variation in cell size. High = Mixed anemia.",
			Aliases:     []string{"RDW CV", "Red Cell Distribution Width"},
		},
		{
			Name: "Total WBC", SimpleName: "Total Immune Cells", Unit: "cells/cumm",
			Min: 4000, Max: 10000,
			Explanation:  "Overall immune strength.",
			LowSymptoms:  "Frequent or lingering infections.",
			HighSymptoms: "Fever or signs of an active infection or inflammation.",
			Aliases:      []string{"TOTAL WBC COUNT", "Total Leucocyte Count", "TLC"},
		},
		{
			Name: "Neutrophils", SimpleName: "Bacterial Fighters", Unit: "/cumm",
			Min: 2000, Max: 7000,
			Explanation: "Fight bacteria. High = Bacterial infection.",
			Aliases:     []string{"Absolute Neutrophils Count", "Neutrophils"},
		},
		{
			Name: "Lymphocytes", SimpleName: "Viral Fighters", Unit: "/cumm",
			Min: 1000, Max: 3000,
			Explanation: "Fight viruses. High = Viral infection.",
			Aliases:     []string{"Absolute Lymphocyte count", "Lymphocytes"},
		},
		{
			Name: "Monocytes", SimpleName: "Cleanup Cells", Unit: "/cumm",
			Min: 200, Max: 1000,
			Explanation: "Clear debris. High = Chronic infection.",
			Aliases:     []string{"Absolute Monocyte Count", "Monocytes"},
		},
		{
			Name: "Eosinophils", SimpleName: "Allergy Fighters", Unit: "/cumm",
			Min: 100, Max: 500,
			Explanation: "Fight parasites/allergies.",
			Aliases:     []string{"Absolute Eosinophil count", "Eosinophils"},
		},
		{
			Name: "Basophils", SimpleName: "Inflammation Fighters", Unit: "/cumm",
			Min: 0, Max: 100,
			Explanation: "Rare immune cells.",
			Aliases:     []string{"Absolute Basophil count", "Basophils"},
		},
		{
			Name: "Platelets", SimpleName: "Clotting Cells", Unit: "/cumm",
			Min: 150000, Max: 450000,
			Explanation:  "Stop bleeding. Low = Bruising risk.",
			LowSymptoms:  "Easy bruising, bleeding gums, tiny red spots on the skin.",
			HighSymptoms: "Usually silent; rarely clotting problems.",
			Aliases:      []string{"PLATELET COUNT", "Platelets"},
		},

		// ===== KIDNEY =====
		{
			Name: "Blood Urea", SimpleName: "Nitrogen Waste", Unit: "mg/dL",
			Min: 15.0, Max: 45.0,
			Explanation: "Waste product.",
			Aliases:     []string{"BLOOD UREA"},
		},
		{
			Name: "BUN", SimpleName: "Blood Urea Nitrogen", Unit: "mg/dL",
			Min: 5.0, Max: 18.0,
			Explanation: "Waste from protein. High = Kidney stress.",
			Aliases:     []string{"BLOOD UREA NITROGEN", "BUN"},
		},
		{
			Name: "Creatinine", SimpleName: "Kidney Waste Filter", Unit: "mg/dL",
			Min: 0.7, Max: 1.2,
			Explanation:  "Muscle waste filtered by kidneys. High = Kidney issues.",
			HighSymptoms: "Swelling in legs or ankles, reduced urination, tiredness.",
			Aliases:      []string{"CREATININE", "S.Creatinine"},
		},
		{
			Name: "Calcium", SimpleName: "Bone Mineral", Unit: "mg/dL",
			Min: 8.4, Max: 10.2,
			Explanation:  "Crucial for bones/nerves.",
			LowSymptoms:  "Muscle cramps, tingling in fingers, brittle nails.",
			HighSymptoms: "Thirst, constipation, bone pain, confusion.",
			Aliases:      []string{"CALCIUM"},
		},
		{
			Name: "Phosphorus", SimpleName: "Bone Health Mineral", Unit: "mg/dL",
			Min: 2.7, Max: 4.9,
			Explanation: "Works with calcium for bones.",
			Aliases:     []string{"PHOSPHORUS"},
		},
		{
			Name: "Uric Acid", SimpleName: "Gout Marker", Unit: "mg/dL",
			Min: 3.0, Max: 7.0,
			Explanation:  "High levels cause Gout (joint pain).",
			HighSymptoms: "Joint pain and swelling, often in the big toe.",
			Aliases:      []string{"URIC ACID"},
		},

		// ===== LIPID PROFILE =====
		{
			Name: "Total Cholesterol", SimpleName: "Total Fat in Blood", Unit: "mg/dL",
			Min: 0, Max: 200,
			Explanation:  "Overall cholesterol health.",
			HighSymptoms: "Usually no symptoms; raises long-term heart risk.",
			Aliases:      []string{"CHOLESTEROL", "Total Cholesterol"},
		},
		{
			Name: "Triglycerides", SimpleName: "Fat from Calories", Unit: "mg/dL",
			Min: 0, Max: 150,
			Explanation: "Fat from sugar/carbs.",
			Aliases:     []string{"TRIGLYCERIDE", "Triglycerides"},
		},
		{
			Name: "HDL Cholesterol", SimpleName: "Good Cholesterol", Unit: "mg/dL",
			Min: 40, Max: 60,
			Explanation: "Protects heart. Higher is better.",
			LowSymptoms: "No symptoms; lower protection against heart disease.",
			Aliases:     []string{"HDL-CHOLESTEROL", "HDL"},
		},
		{
			Name: "LDL Cholesterol", SimpleName: "Bad Cholesterol", Unit: "mg/dL",
			Min: 0, Max: 100,
			Explanation:  "Clogs arteries. Lower is better.",
			HighSymptoms: "No symptoms; builds plaque in arteries over time.",
			Aliases:      []string{"LDL-CHOLESTEROL"},
		},
		{
			Name: "VLDL Cholesterol", SimpleName: "Very Bad Cholesterol", Unit: "mg/dL",
			Min: 2, Max: 30,
			Explanation: "Carries fat to tissues. High = Risk.",
			Aliases:     []string{"VLDL-CHOLESTEROL"},
		},
		{
			Name: "Chol/HDL Ratio", SimpleName: "Heart Risk Ratio", Unit: "ratio",
			Min: 0, Max: 5.0,
			Explanation: "Ratio of bad to good cholesterol.",
			Aliases:     []string{"CHOLESTEROL/HDL RATIO"},
		},

		// ===== LIVER FUNCTION =====
		{
			Name: "Total Bilirubin", SimpleName: "Total Bile Pigment", Unit: "mg/dL",
			Min: 0.1, Max: 1.2,
			Explanation:  "Yellow pigment. High = Jaundice.",
			HighSymptoms: "Yellowing of skin or eyes, dark urine.",
			Aliases:      []string{"BILIRUBIN-TOTAL"},
		},
		{
			Name: "Direct Bilirubin", SimpleName: "Processed Bile Pigment", Unit: "mg/dL",
			Min: 0.0, Max: 0.3,
			Explanation: "Processed by liver.",
			Aliases:     []string{"BILIRUBIN-DIRECT"},
		},
		{
			Name: "Indirect Bilirubin", SimpleName: "Unprocessed Bile Pigment", Unit: "mg/dL",
			Min: 0.1, Max: 0.9,
			Explanation: "Not yet processed.",
			Aliases:     []string{"BILIRUBIN-INDIRECT"},
		},
		{
			Name: "Total Protein", SimpleName: "Total Blood Proteins", Unit: "g/dL",
			Min: 6.0, Max: 8.0,
			Explanation: "Overall nutritional status.",
			Aliases:     []string{"PROTEIN TOTAL"},
		},
		{
			Name: "Albumin", SimpleName: "Liver Protein", Unit: "g/dL",
			Min: 3.5, Max: 5.0,
			Explanation: "Main liver protein. Low = Liver disease.",
			LowSymptoms: "Swelling of feet or belly, fatigue.",
			Aliases:     []string{"ALBUMIN"},
		},
		{
			Name: "Globulin", SimpleName: "Immune Proteins", Unit: "g/dL",
			Min: 2.0, Max: 3.5,
			Explanation: "Immune system proteins.",
			Aliases:     []string{"GLOBULIN"},
		},
		{
			Name: "A/G Ratio", SimpleName: "Protein Balance", Unit: "ratio",
			Min: 1.0, Max: 2.0,
			Explanation: "Balance of proteins.",
			Aliases:     []string{"ALBUMIN GLOBULIN RATIO", "A/G Ratio"},
		},
		{
			Name: "SGOT (AST)", SimpleName: "Liver Enzyme (AST)", Unit: "U/L",
			Min: 5, Max: 40,
			Explanation: "Released when liver cells damaged.",
			Aliases:     []string{"ASPARTATE AMINO TRANSFERASE", "SGOT", "AST"},
		},
		{
			Name: "SGPT (ALT)", SimpleName: "Liver Enzyme (ALT)", Unit: "U/L",
			Min: 5, Max: 40,
			Explanation:  "Most specific liver enzyme.",
			HighSymptoms: "Fatigue, nausea, abdominal discomfort; often silent.",
			Aliases:      []string{"ALANINE AMINOTRANSFERASE", "SGPT", "ALT"},
		},
		{
			Name: "GGT", SimpleName: "Bile Duct Enzyme", Unit: "U/L",
			Min: 5, Max: 50,
			Explanation: "Bile duct damage marker.",
			Aliases:     []string{"GAMMA GLUTAMYL TRANSFERASE", "GGT"},
		},
		{
			Name: "Alkaline Phosphatase", SimpleName: "Bone/Liver Enzyme", Unit: "U/L",
			Min: 30, Max: 120,
			Explanation: "Bone or liver issue marker.",
			Aliases:     []string{"ALKALINE PHOSPHATASE", "ALP"},
		},
	}
}

// DefaultRegistry returns a registry over DefaultDefinitions.
func DefaultRegistry() *Registry {
	reg, err := NewRegistry(DefaultDefinitions())
	if err != nil {
		panic(err)
	}

	return reg
}
