package services

// SelectOption is one entry of a select control.
type SelectOption struct {
	Value string
	Label string
}

// DeliveryFromOptions lists where a mill tender is delivered from.
var DeliveryFromOptions = []SelectOption{
	{Value: "ExMill", Label: "Ex Mill"},
	{Value: "ExWarehouse", Label: "Mill Warehouse"},
}

// GSTOptions lists the GST percentages offered as suggestions next to the
// free-text GST field.
var GSTOptions = []int{0, 5, 12, 18, 28}

func deliveryFromValues() []interface{} {
	values := make([]interface{}, 0, len(DeliveryFromOptions))
	for _, opt := range DeliveryFromOptions {
		values = append(values, opt.Value)
	}
	return values
}
