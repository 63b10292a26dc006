package mockapi

import "github.com/UlviDemirsoy/JavaReflection/internal/domain"

// Class is a seedable model: the class name used by /seeding and the schema
// served under /schema/{collection}.
type Class struct {
	Name   string
	Schema domain.ModelSchema
}

func scalar(t domain.FieldType) domain.FieldDefinition {
	return domain.FieldDefinition{Type: t}
}

func ref(t domain.FieldType, to string) domain.FieldDefinition {
	return domain.FieldDefinition{Type: t, Reference: to}
}

func enum(name string) domain.FieldDefinition {
	return domain.FieldDefinition{Type: domain.FieldEnum, EnumName: name}
}

func arrayOf(item domain.FieldDefinition) domain.FieldDefinition {
	return domain.FieldDefinition{Type: domain.FieldArray, Items: &item}
}

func object(fields map[string]domain.FieldDefinition) domain.FieldDefinition {
	return domain.FieldDefinition{Type: domain.FieldObject, Fields: fields}
}

// DefaultClasses returns the models the backend ships with.
func DefaultClasses() []Class {
	return []Class{
		{
			Name: "PurchaseProduct",
			Schema: domain.ModelSchema{
				Collection:  "purchaseproduct",
				DisplayName: "PurchaseProduct",
				Fields: map[string]domain.FieldDefinition{
					"_id":      scalar(domain.FieldString),
					"name":     scalar(domain.FieldString),
					"price":    scalar(domain.FieldNumber),
					"currency": scalar(domain.FieldString),
				},
			},
		},
		{
			Name: "Offer",
			Schema: domain.ModelSchema{
				Collection:  "offer",
				DisplayName: "Offer",
				Fields: map[string]domain.FieldDefinition{
					"_id":               scalar(domain.FieldString),
					"name":              scalar(domain.FieldString),
					"purchaseProductId": ref(domain.FieldString, "purchaseProduct"),
					"requirements": arrayOf(object(map[string]domain.FieldDefinition{
						"requirement": enum("Requirement"),
						"operator":    scalar(domain.FieldString),
						"value":       scalar(domain.FieldNumber),
					})),
				},
			},
		},
		{
			Name: "Cascade",
			Schema: domain.ModelSchema{
				Collection:  "cascade",
				DisplayName: "Cascade",
				Fields: map[string]domain.FieldDefinition{
					"_id":       scalar(domain.FieldString),
					"name":      scalar(domain.FieldString),
					"skinId":    ref(domain.FieldNumber, "skin"),
					"startDate": scalar(domain.FieldDate),
					"endDate":   scalar(domain.FieldDate),
					"stepInfo": arrayOf(object(map[string]domain.FieldDefinition{
						"group": scalar(domain.FieldString),
						"steps": arrayOf(object(map[string]domain.FieldDefinition{
							"step":         scalar(domain.FieldNumber),
							"requiredStep": scalar(domain.FieldNumber),
							"rewards": arrayOf(object(map[string]domain.FieldDefinition{
								"tradeType":        enum("TradeType"),
								"eventType":        enum("EventType"),
								"value":            scalar(domain.FieldNumber),
								"remainingSeconds": scalar(domain.FieldNumber),
							})),
						})),
					})),
				},
			},
		},
	}
}

// DefaultAvailableClasses is the seeding catalog in display order. Skin is
// advertised but has no model, so seeding it fails like on the real backend.
func DefaultAvailableClasses() []string {
	return []string{"Skin", "PurchaseProduct", "Offer", "Cascade"}
}

// DefaultEnums lists the enum constants known to the generator.
func DefaultEnums() map[string][]string {
	return map[string][]string{
		"Requirement": {
			"minLevel",
			"daysSinceRegistration",
			"playTimeHours",
			"lastLoginDaysAgo",
			"hasSubscription",
			"region",
			"hasPremiumAccess",
		},
	}
}
