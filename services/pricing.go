package services

import (
	"github.com/MeiyuTech/aet-backend/entity"
)

// Delivery methods offered on the form.
const (
	DeliveryNone          = "no_delivery_needed"
	DeliveryUSPSFirst     = "usps_first_class"
	DeliveryUSPSPriority  = "usps_priority"
	DeliveryUSPSExpress   = "usps_express"
	DeliveryInternational = "international"
)

// Purposes the applicant can pick; "other" unlocks the free-text field.
const (
	PurposeEducation   = "education"
	PurposeImmigration = "immigration"
	PurposeEmployment  = "employment"
	PurposeTranslation = "translation"
	PurposeOther       = "other"
)

// Offices an application can be routed to.
var validOffices = map[string]bool{
	"boston":        true,
	"new_york":      true,
	"san_francisco": true,
	"los_angeles":   true,
	"miami":         true,
}

var validPurposes = map[string]bool{
	PurposeEducation:   true,
	PurposeImmigration: true,
	PurposeEmployment:  true,
	PurposeTranslation: true,
	PurposeOther:       true,
}

// Price list in cents, product -> speed tier.
var servicePrices = map[string]map[string]int64{
	entity.ServiceDocumentEvaluation: {
		entity.Speed7Day:    10000,
		entity.Speed3Day:    15000,
		entity.Speed24Hour:  22500,
		entity.SpeedSameDay: 30000,
	},
	entity.ServiceCourseEvaluation: {
		entity.Speed7Day:    18000,
		entity.Speed3Day:    25000,
		entity.Speed24Hour:  35000,
		entity.SpeedSameDay: 45000,
	},
	entity.ServiceTranslation: {
		entity.Speed7Day:    7500,
		entity.Speed3Day:    12500,
		entity.Speed24Hour:  17500,
		entity.SpeedSameDay: 25000,
	},
	entity.ServiceExpertOpinion: {
		entity.Speed7Day:    59900,
		entity.Speed3Day:    79900,
		entity.Speed24Hour:  99900,
		entity.SpeedSameDay: 129900,
	},
}

var addonPrices = map[string]int64{
	entity.AddonExtraCopy:       3000,
	entity.AddonPDFOnly:         2000,
	entity.AddonPDFWithHardCopy: 4000,
}

var deliveryPrices = map[string]int64{
	DeliveryNone:          0,
	DeliveryUSPSFirst:     700,
	DeliveryUSPSPriority:  1700,
	DeliveryUSPSExpress:   3200,
	DeliveryInternational: 7500,
}

// TotalCents prices the whole order: selections + add-ons + delivery.
func TotalCents(app *entity.Application) int64 {
	var total int64
	for _, sel := range app.ServiceSelections {
		total += servicePrices[sel.ServiceType][sel.SpeedTier]
	}
	for _, addon := range app.AdditionalServices {
		total += addonPrices[addon.ServiceCode] * int64(addon.Quantity)
	}
	total += deliveryPrices[app.DeliveryMethod]
	return total
}
