package data

import "github.com/udisondev/unitsim/internal/model"

type prefabDef struct {
	name     string
	path     string
	template *UnitTemplate
}

var prefabDefs = []prefabDef{
	{
		name: "SamplePrefab",
		path: "Prefabs/SamplePrefabs/SamplePrefab",
		template: &UnitTemplate{
			TemplateID: 1,
			Name:       "SamplePrefab",
			Attributes: []AttributeBase{
				{Kind: model.AttributeHealth, Base: 100},
				{Kind: model.AttributeMaxHealth, Base: 100},
				{Kind: model.AttributeAttack, Base: 10},
				{Kind: model.AttributeDefense, Base: 5},
				{Kind: model.AttributeMoveSpeed, Base: 4},
			},
		},
	},
	{
		name: "Soldier",
		path: "Prefabs/Units/Soldier",
		template: &UnitTemplate{
			TemplateID: 2,
			Name:       "Soldier",
			Attributes: []AttributeBase{
				{Kind: model.AttributeHealth, Base: 250},
				{Kind: model.AttributeMaxHealth, Base: 250},
				{Kind: model.AttributeAttack, Base: 25},
				{Kind: model.AttributeDefense, Base: 15},
				{Kind: model.AttributeMoveSpeed, Base: 3},
				{Kind: model.AttributeAttackSpeed, Base: 1},
			},
		},
	},
	{
		name: "Crate",
		path: "Prefabs/Props/Crate",
		template: &UnitTemplate{
			TemplateID: 3,
			Name:       "Crate",
			Attributes: []AttributeBase{
				{Kind: model.AttributeHealth, Base: 20},
				{Kind: model.AttributeMaxHealth, Base: 20},
			},
		},
	},
}
