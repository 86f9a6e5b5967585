package execution_test

import (
	"errors"
	"fmt"
	"testing"

	"execution-bot/execution"
	"execution-bot/store"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type postedMessage struct {
	ChannelID string
	Embed     *discordgo.MessageEmbed
}

// fakeMessenger records calls and can be told to fail posting or deleting.
type fakeMessenger struct {
	posts      []postedMessage
	reactions  []string
	deleted    []string
	nextID     int
	failPost   bool
	failDelete bool
}

func (m *fakeMessenger) PostEmbed(channelID string, embed *discordgo.MessageEmbed) (string, error) {
	if m.failPost {
		return "", errors.New("unknown channel")
	}
	m.posts = append(m.posts, postedMessage{ChannelID: channelID, Embed: embed})
	m.nextID++
	return fmt.Sprintf("M%d", m.nextID), nil
}

func (m *fakeMessenger) React(channelID, messageID, emoji string) error {
	m.reactions = append(m.reactions, emoji)
	return nil
}

func (m *fakeMessenger) DeleteMessage(channelID, messageID string) error {
	if m.failDelete {
		return errors.New("unknown message")
	}
	m.deleted = append(m.deleted, channelID+"/"+messageID)
	return nil
}

func newService(t *testing.T) (*execution.Service, *store.Store, *fakeMessenger) {
	t.Helper()
	st := store.New(t.TempDir())
	require.NoError(t, st.Load())
	m := &fakeMessenger{}
	logger, _ := test.NewNullLogger()
	return execution.NewService(st, m, logger), st, m
}

var (
	executor = execution.Invoker{ID: "E1"}
	admin    = execution.Invoker{ID: "A1", ManageGuild: true}
	staff    = execution.Invoker{ID: "S1", ManageMessages: true}
)

func TestSetupRequiresManageGuild(t *testing.T) {
	svc, st, _ := newService(t)

	reply, err := svc.Setup("G1", executor, "C1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Manage Server")
	_, ok := st.ExecutionChannel("G1")
	assert.False(t, ok)

	reply, err = svc.Setup("G1", admin, "C1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "<#C1>")
	ch, ok := st.ExecutionChannel("G1")
	require.True(t, ok)
	assert.Equal(t, "C1", ch)
}

func TestAddBeforeSetup(t *testing.T) {
	svc, _, m := newService(t)

	reply, err := svc.Add("G1", executor, "U1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "setup")
	assert.Empty(t, m.posts)
}

func TestAddPostsToConfiguredChannel(t *testing.T) {
	svc, st, m := newService(t)
	_, err := svc.Setup("G1", admin, "C1")
	require.NoError(t, err)

	reply, err := svc.Add("G1", executor, "U1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "<#C1>")

	require.Len(t, m.posts, 1)
	assert.Equal(t, "C1", m.posts[0].ChannelID)
	assert.Contains(t, m.posts[0].Embed.Description, "<@U1>")
	assert.Contains(t, m.posts[0].Embed.Description, "<@E1>")
	assert.Equal(t, []string{"⬆️", "⬇️"}, m.reactions)

	rec, ok := st.Execution("G1", "M1")
	require.True(t, ok)
	assert.Equal(t, "E1", rec.ExecutorID)
	assert.Equal(t, "U1", rec.ExecutedUserID)
	assert.Equal(t, "C1", rec.ChannelID)
	assert.NotZero(t, rec.Timestamp)
}

func TestAddPostFailureWritesNoRecord(t *testing.T) {
	svc, st, m := newService(t)
	_, err := svc.Setup("G1", admin, "C1")
	require.NoError(t, err)
	m.failPost = true

	_, err = svc.Add("G1", executor, "U1")
	assert.Error(t, err)
	_, ok := st.Execution("G1", "M1")
	assert.False(t, ok)
}

func TestRemoveOwnershipOnly(t *testing.T) {
	svc, st, m := newService(t)
	_, err := svc.Setup("G1", admin, "C1")
	require.NoError(t, err)
	_, err = svc.Add("G1", executor, "U1")
	require.NoError(t, err)

	// Another user, even one with staff permissions, is denied here.
	reply, err := svc.Remove("G1", staff, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "your own")
	_, ok := st.Execution("G1", "M1")
	assert.True(t, ok)

	reply, err = svc.Remove("G1", executor, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "removed")
	assert.Equal(t, []string{"C1/M1"}, m.deleted)
	_, ok = st.Execution("G1", "M1")
	assert.False(t, ok)
}

func TestRemoveNotFound(t *testing.T) {
	svc, _, _ := newService(t)

	reply, err := svc.Remove("G1", executor, "M404")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "not found")

	reply, err = svc.RemoveStaff("G1", staff, "M404")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "not found")
}

func TestRemoveStaffPermission(t *testing.T) {
	svc, st, _ := newService(t)
	_, err := svc.Setup("G1", admin, "C1")
	require.NoError(t, err)
	_, err = svc.Add("G1", executor, "U1")
	require.NoError(t, err)

	// Permission is checked before existence: a non-staff invoker is denied
	// even for an unknown message id.
	reply, err := svc.RemoveStaff("G1", executor, "M404")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Manage Messages")

	reply, err = svc.RemoveStaff("G1", staff, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "removed")
	_, ok := st.Execution("G1", "M1")
	assert.False(t, ok)
}

func TestDeleteFailureKeepsRecord(t *testing.T) {
	svc, st, m := newService(t)
	_, err := svc.Setup("G1", admin, "C1")
	require.NoError(t, err)
	_, err = svc.Add("G1", executor, "U1")
	require.NoError(t, err)
	m.failDelete = true

	reply, err := svc.Remove("G1", executor, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Could not find or delete")
	_, ok := st.Execution("G1", "M1")
	assert.True(t, ok)

	reply, err = svc.RemoveStaff("G1", staff, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "Could not find or delete")
	_, ok = st.Execution("G1", "M1")
	assert.True(t, ok)
}

func TestHelp(t *testing.T) {
	svc, _, _ := newService(t)

	reply := svc.Help()
	require.NotNil(t, reply.Embed)
	assert.Len(t, reply.Embed.Fields, 5)
}

// Full lifecycle: missing setup, setup, add, self-remove, second remove.
func TestExecutionLifecycle(t *testing.T) {
	svc, st, m := newService(t)

	reply, err := svc.Add("G1", executor, "U1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "setup")
	assert.Empty(t, m.posts)

	_, err = svc.Setup("G1", admin, "Cexec")
	require.NoError(t, err)
	ch, ok := st.ExecutionChannel("G1")
	require.True(t, ok)
	assert.Equal(t, "Cexec", ch)

	_, err = svc.Add("G1", executor, "U1")
	require.NoError(t, err)
	rec, ok := st.Execution("G1", "M1")
	require.True(t, ok)
	assert.Equal(t, "E1", rec.ExecutorID)
	assert.Equal(t, "U1", rec.ExecutedUserID)
	assert.Equal(t, "Cexec", rec.ChannelID)

	reply, err = svc.Remove("G1", executor, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "removed successfully")
	assert.Equal(t, []string{"Cexec/M1"}, m.deleted)

	reply, err = svc.Remove("G1", executor, "M1")
	require.NoError(t, err)
	assert.Contains(t, reply.Content, "not found")
}
