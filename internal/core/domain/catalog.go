package domain

import "slices"

// PropertyTypes are the category spellings the models were trained on.
var PropertyTypes = []string{
	"Commercial", "Condo", "Four Family", "Industrial", "Public Utility",
	"Residential", "Single Family", "Three Family", "Two Family", "Vacant Land",
}

// Towns are the towns the form offers.
var Towns = []string{
	"Andover", "Ansonia", "Avon", "Bridgeport", "Bristol", "Danbury", "East Hartford",
	"Fairfield", "Greenwich", "Hartford", "Manchester", "Meriden", "Middletown",
	"Milford", "New Britain", "New Haven", "Norwalk", "Stamford", "Stratford", "Waterbury",
}

type ModelChoice string

const (
	ModelRandomForest ModelChoice = "Random Forest"
	ModelXGBoost      ModelChoice = "XGBoost"
)

// ModelChoices lists the selectable models in display order.
var ModelChoices = []ModelChoice{ModelRandomForest, ModelXGBoost}

// DefaultModelIDs maps each model choice to its file identifier on the remote host.
var DefaultModelIDs = map[ModelChoice]string{
	ModelRandomForest: "1rCjOLocgwSYJDyuNAxwo6Y8QF4UIdtEe",
	ModelXGBoost:      "1DD3nCrJ5CTfQlgeGvDrAFb_1r90UWJmx",
}

func IsKnownTown(town string) bool {
	return slices.Contains(Towns, town)
}

func IsKnownPropertyType(propertyType string) bool {
	return slices.Contains(PropertyTypes, propertyType)
}

func IsKnownModel(choice ModelChoice) bool {
	return slices.Contains(ModelChoices, choice)
}
