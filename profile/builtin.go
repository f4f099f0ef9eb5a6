package profile

import "github.com/AuroraMediaLabs/pipedash/stage"

// builtins is the shipped profile catalogue, in display order. Ids are
// stable across releases so saved references keep resolving.
var builtins = []Profile{
	{
		ID:          "builtin-quick-predict",
		Name:        "Quick Predict",
		Description: "Single generation pass with default settings",
		IsBuiltIn:   true,
		Stages: []StageTemplate{
			{Type: stage.TypePredict, Order: 1, Config: stage.DefaultPredictParams()},
		},
	},
	{
		ID:          "builtin-predict-validate",
		Name:        "Predict + Validate",
		Description: "Generation followed by a physics validation gate",
		IsBuiltIn:   true,
		Stages: []StageTemplate{
			{Type: stage.TypePredict, Order: 1, Config: stage.DefaultPredictParams()},
			{Type: stage.TypeReason, Order: 2, Config: stage.DefaultReasonParams()},
		},
	},
	{
		ID:          "builtin-full-augment",
		Name:        "Full Augmentation",
		Description: "Generation, weather transfer, and a pass-only validation gate",
		IsBuiltIn:   true,
		Stages: []StageTemplate{
			{Type: stage.TypePredict, Order: 1, Config: stage.DefaultPredictParams()},
			{Type: stage.TypeTransfer, Order: 2, Config: transferWithStyles("Rain", "Fog")},
			{Type: stage.TypeReason, Order: 3, Config: stage.DefaultReasonParams()},
		},
	},
}

func transferWithStyles(names ...string) *stage.TransferParams {
	p := stage.DefaultTransferParams()
	// Built-in style names are known good; a failure here is a programming
	// error caught by the package tests.
	_ = p.ApplyStyles(names)
	return p
}

// BuiltinProfiles returns deep copies of the shipped profiles, in fixed
// order.
func BuiltinProfiles() []Profile {
	out := make([]Profile, len(builtins))
	for i, p := range builtins {
		out[i] = p.Clone()
	}
	return out
}
