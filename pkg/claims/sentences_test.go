package claims

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitClinicalSentences_AbbreviationDoesNotSplit(t *testing.T) {
	sentences := splitClinicalSentences("The patient was stable. Dr. Lee examined her.")
	require.Len(t, sentences, 2)
	assert.Equal(t, "The patient was stable.", sentences[0])
	assert.Equal(t, "Dr. Lee examined her.", sentences[1])
}

func TestSplitClinicalSentences_ExclamationSplitsImmediately(t *testing.T) {
	sentences := splitClinicalSentences("Please stop immediately! This is urgent and important.")
	require.Len(t, sentences, 2)
	assert.Equal(t, "Please stop immediately!", sentences[0])
	assert.Equal(t, "This is urgent and important.", sentences[1])
}

func TestSplitClinicalSentences_ShortFragmentsAreDropped(t *testing.T) {
	sentences := splitClinicalSentences("Wait! This is urgent.")
	assert.Equal(t, []string{"This is urgent."}, sentences)
}

func TestSplitSourceLines_BulletLinesStripPrefixes(t *testing.T) {
	lines := splitSourceLines("- Patient has hypertension\n- Patient takes lisinopril 10mg\n")
	assert.Equal(t, []string{"Patient has hypertension", "Patient takes lisinopril 10mg"}, lines)
}

func TestSplitSourceLines_FallsBackToSentenceSplitWithoutNewlines(t *testing.T) {
	lines := splitSourceLines("The patient has hypertension. She also has diabetes.")
	assert.Equal(t, []string{"The patient has hypertension.", "She also has diabetes."}, lines)
}
