package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
)

// LoadEnvFromReader parses KEY=VALUE lines from the reader and sets
// them in the process environment. Empty lines and lines starting with
// '#' are skipped, inline comments are stripped, and single or double
// quotes around a value are removed. Lines without '=' are ignored.
func LoadEnvFromReader(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}

		if idx := strings.Index(line, "#"); idx != -1 {
			line = strings.TrimSpace(line[:idx])
		}
		if len(line) == 0 {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if len(value) > 1 {
			if (value[0] == '"' && value[len(value)-1] == '"') ||
				(value[0] == '\'' && value[len(value)-1] == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set environment variable %s: %w", key, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading from input: %w", err)
	}
	return nil
}

// ImportDotenv loads a .env file from the current working directory
// into the process environment. A missing file is not an error.
func ImportDotenv() error {
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting current working directory: %w", err)
	}

	file, err := os.Open(filepath.Join(pwd, ".env"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error opening .env file: %w", err)
	}
	defer file.Close()

	return LoadEnvFromReader(file)
}

// LoadEnvToStruct populates the fields of the given struct pointer from
// environment variables. Fields are tagged `env:"ENV_VAR_NAME"` with an
// optional `default:"value"` tag; `env:"ENV_VAR_NAME,required"` makes a
// missing variable an error. String, int and bool fields are supported.
func LoadEnvToStruct(ptr interface{}) error {
	v := reflect.ValueOf(ptr)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("input must be a pointer to a struct")
	}

	elem := v.Elem()
	elemType := elem.Type()

	for i := 0; i < elem.NumField(); i++ {
		field := elem.Field(i)
		fieldType := elemType.Field(i)

		if !field.CanSet() {
			continue
		}

		tag := fieldType.Tag.Get("env")
		if tag == "" {
			continue
		}

		parts := strings.Split(tag, ",")
		name := parts[0]
		required := len(parts) > 1 && parts[1] == "required"

		value, found := os.LookupEnv(name)
		if !found {
			if required {
				return fmt.Errorf("required environment variable %s not set", name)
			}
			defaultValue, ok := fieldType.Tag.Lookup("default")
			if !ok {
				continue
			}
			value = defaultValue
		}

		switch field.Kind() {
		case reflect.String:
			field.SetString(value)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			intValue, err := strconv.ParseInt(value, 0, field.Type().Bits())
			if err != nil {
				return fmt.Errorf("error parsing int for %s from %q: %w", fieldType.Name, value, err)
			}
			field.SetInt(intValue)
		case reflect.Bool:
			boolValue, err := strconv.ParseBool(value)
			if err != nil {
				return fmt.Errorf("error parsing bool for %s from %q: %w", fieldType.Name, value, err)
			}
			field.SetBool(boolValue)
		default:
			return fmt.Errorf("unsupported type %s for field %s", field.Kind(), fieldType.Name)
		}
	}
	return nil
}
