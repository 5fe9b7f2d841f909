package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price float64, qty int) Line {
	return Line{ProductID: id, Name: "Product " + id, Price: price, Quantity: qty}
}

func TestAddMergesQuantitiesForSameProduct(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 1))
	c.Add(line("p1", 10, 3))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 4, c.Lines[0].Quantity)
}

func TestAddSumsAcrossRepeatedAdds(t *testing.T) {
	c := &Cart{}
	quantities := []int{2, 5, 1, 7}
	sum := 0
	for _, q := range quantities {
		c.Add(line("p1", 3.5, q))
		sum += q
	}

	require.Len(t, c.Lines, 1)
	assert.Equal(t, sum, c.Lines[0].Quantity)
}

func TestAddKeepsDistinctProductsInInsertionOrder(t *testing.T) {
	c := &Cart{}
	c.Add(line("a", 1, 1))
	c.Add(line("b", 2, 1))
	c.Add(line("a", 1, 1))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "a", c.Lines[0].ProductID)
	assert.Equal(t, "b", c.Lines[1].ProductID)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddClampsSubOneQuantity(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 0))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestSetQuantityOverwritesExactly(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 2))
	c.SetQuantity("p1", 7)

	assert.Equal(t, 7, c.Lines[0].Quantity)
}

func TestSetQuantityBelowOneRemovesLine(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 1))
	c.SetQuantity("p1", 0)

	assert.True(t, c.IsEmpty())
}

func TestSetQuantityBelowOneEquivalentToRemove(t *testing.T) {
	viaSet := &Cart{}
	viaSet.Add(line("p1", 10, 3))
	viaSet.Add(line("p2", 5, 1))
	viaSet.SetQuantity("p1", -2)

	viaRemove := &Cart{}
	viaRemove.Add(line("p1", 10, 3))
	viaRemove.Add(line("p2", 5, 1))
	viaRemove.Remove("p1")

	assert.Equal(t, viaRemove.Lines, viaSet.Lines)
}

func TestRemoveUnknownProductIsNoop(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 1))
	c.Remove("missing")

	assert.Len(t, c.Lines, 1)
}

func TestClearEmptiesAllLines(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 10, 1))
	c.Add(line("p2", 20, 2))
	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Count())
}

func TestDisplayTotalRoundsToTwoDecimals(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 9.99, 2))

	assert.Equal(t, 19.98, c.DisplayTotal())
}

func TestTotalSumsPriceTimesQuantity(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 2.5, 3))
	c.Add(line("p2", 1.25, 4))

	assert.InDelta(t, 12.5, c.Total(), 1e-9)
}

func TestCountSumsQuantities(t *testing.T) {
	c := &Cart{}
	c.Add(line("p1", 1, 2))
	c.Add(line("p2", 1, 5))

	assert.Equal(t, 7, c.Count())
}

func TestParseQuantityCoercesBadInputToOne(t *testing.T) {
	assert.Equal(t, 1, ParseQuantity("abc"))
	assert.Equal(t, 1, ParseQuantity(""))
	assert.Equal(t, 1, ParseQuantity("0"))
	assert.Equal(t, 1, ParseQuantity("-3"))
	assert.Equal(t, 4, ParseQuantity(" 4 "))
}

func TestQuantityUnmarshalAcceptsNumberAndString(t *testing.T) {
	var q Quantity

	require.NoError(t, q.UnmarshalJSON([]byte("3")))
	assert.Equal(t, Quantity(3), q)

	require.NoError(t, q.UnmarshalJSON([]byte(`"5"`)))
	assert.Equal(t, Quantity(5), q)

	require.NoError(t, q.UnmarshalJSON([]byte(`"oops"`)))
	assert.Equal(t, Quantity(1), q)

	require.NoError(t, q.UnmarshalJSON([]byte("0")))
	assert.Equal(t, Quantity(1), q)
}

func TestClampQuantityFloorsAtOne(t *testing.T) {
	assert.Equal(t, 1, ClampQuantity(-10))
	assert.Equal(t, 1, ClampQuantity(0))
	assert.Equal(t, 1, ClampQuantity(1))
	assert.Equal(t, 9, ClampQuantity(9))
}
