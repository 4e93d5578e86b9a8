// Package dataset loads the passenger table.
//
// A CSV file is read with gota, projected onto the columns declared by the
// model, stripped of rows missing a drop_missing column (Embarked in the
// default model) and coerced: int columns become gota Int series and
// categorical columns keep their string values, with the domain recorded
// as the set of values observed at load time.
//
// A Dataset is never modified after loading; every accessor hands out
// copies.
package dataset
