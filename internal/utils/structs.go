package utils

import (
	"reflect"
)

var ColumnTag = "db"

// StructTagValues lists the column names declared by the db tags of a struct,
// skipping untagged fields and fields tagged "-".
func StructTagValues(input any) []string {
	targetValue := indirectStruct(input)
	targetType := targetValue.Type()

	result := make([]string, 0, targetValue.NumField())
	for i := 0; i < targetValue.NumField(); i++ {
		if column, ok := columnName(targetType.Field(i)); ok {
			result = append(result, column)
		}
	}

	return result
}

// StructToMap maps column name to field value for every db-tagged field.
func StructToMap(input any) map[string]any {
	itemValue := indirectStruct(input)
	itemType := itemValue.Type()

	result := make(map[string]any, itemValue.NumField())
	for i := 0; i < itemValue.NumField(); i++ {
		if column, ok := columnName(itemType.Field(i)); ok {
			result[column] = itemValue.Field(i).Interface()
		}
	}

	return result
}

// SetFieldsToMap maps column name to the dereferenced value of every non-nil
// pointer field in a partial-update struct. Column names come from the
// json tag, which update structs share with the row structs.
func SetFieldsToMap(input any) map[string]any {
	itemValue := indirectStruct(input)
	itemType := itemValue.Type()

	result := make(map[string]any)
	for i := 0; i < itemValue.NumField(); i++ {
		field := itemType.Field(i)
		if field.PkgPath != "" || field.Type.Kind() != reflect.Ptr {
			continue
		}

		value := itemValue.Field(i)
		if value.IsNil() {
			continue
		}

		column := field.Tag.Get("json")
		if column == "" || column == "-" {
			continue
		}

		result[column] = value.Elem().Interface()
	}

	return result
}

func indirectStruct(input any) reflect.Value {
	value := reflect.ValueOf(input)
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}

	if value.Kind() != reflect.Struct {
		panic("input must be a pointer to a struct or a struct")
	}

	return value
}

func columnName(field reflect.StructField) (string, bool) {
	if field.PkgPath != "" {
		return "", false
	}

	tagValue := field.Tag.Get(ColumnTag)
	if tagValue == "" || tagValue == "-" {
		return "", false
	}

	return tagValue, true
}
