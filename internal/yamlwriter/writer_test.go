package yamlwriter

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/CSV-to-SNMP-conversion/internal/types"
	"gopkg.in/yaml.v3"
)

func communityInstance() types.Instance {
	return types.Instance{
		IPAddress:   "10.0.0.5",
		Port:        161,
		SNMPVersion: 2,
		Auth:        types.CommunityAuth{CommunityString: types.PlaceholderCommunityString},
		Tags:        []types.Tag{{Name: "caption", Value: "Router1"}},
	}
}

func indexAll(t *testing.T, s string, subs ...string) []int {
	t.Helper()
	idx := make([]int, len(subs))
	for i, sub := range subs {
		idx[i] = strings.Index(s, sub)
		if idx[i] < 0 {
			t.Fatalf("rendered YAML is missing %q:\n%s", sub, s)
		}
	}
	return idx
}

func TestRenderTopLevelOrder(t *testing.T) {
	data, err := Render(types.NewDocument([]types.Instance{communityInstance()}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := string(data)
	idx := indexAll(t, out, "init_config:", "loader: core", "use_device_id_as_hostname: true", "instances:")
	for i := 1; i < len(idx); i++ {
		if idx[i-1] > idx[i] {
			t.Fatalf("top-level keys out of order:\n%s", out)
		}
	}
}

func TestRenderInstanceKeyOrder(t *testing.T) {
	data, err := Render(types.NewDocument([]types.Instance{communityInstance()}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := string(data)
	idx := indexAll(t, out, "ip_address:", "port:", "snmp_version:", "community_string:", "tags:")
	for i := 1; i < len(idx); i++ {
		if idx[i-1] > idx[i] {
			t.Fatalf("instance keys out of order:\n%s", out)
		}
	}
}

func TestRenderCommunityInstanceValues(t *testing.T) {
	data, err := Render(types.NewDocument([]types.Instance{communityInstance()}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	// Round-trip through the YAML parser to check the values land intact.
	var parsed struct {
		InitConfig struct {
			Loader                string `yaml:"loader"`
			UseDeviceIDAsHostname bool   `yaml:"use_device_id_as_hostname"`
		} `yaml:"init_config"`
		Instances []map[string]interface{} `yaml:"instances"`
	}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("rendered YAML does not parse: %v\n%s", err, data)
	}

	if parsed.InitConfig.Loader != "core" || !parsed.InitConfig.UseDeviceIDAsHostname {
		t.Errorf("init_config = %+v", parsed.InitConfig)
	}
	if len(parsed.Instances) != 1 {
		t.Fatalf("instances = %d, want 1", len(parsed.Instances))
	}

	inst := parsed.Instances[0]
	if inst["ip_address"] != "10.0.0.5" {
		t.Errorf("ip_address = %v", inst["ip_address"])
	}
	if inst["port"] != 161 {
		t.Errorf("port = %v (%T), want 161", inst["port"], inst["port"])
	}
	if inst["snmp_version"] != 2 {
		t.Errorf("snmp_version = %v", inst["snmp_version"])
	}
	if inst["community_string"] != types.PlaceholderCommunityString {
		t.Errorf("community_string = %v", inst["community_string"])
	}
	tags, ok := inst["tags"].([]interface{})
	if !ok || len(tags) != 1 || tags[0] != "caption:Router1" {
		t.Errorf("tags = %v", inst["tags"])
	}
	if _, present := inst["min_collection_interval"]; present {
		t.Error("min_collection_interval should be absent when zero")
	}
}

func TestRenderAuthVariantsExclusive(t *testing.T) {
	v3 := communityInstance()
	v3.SNMPVersion = 3
	v3.Auth = types.UserAuth{
		User:         types.PlaceholderUser,
		AuthProtocol: types.PlaceholderAuthProtocol,
		AuthKey:      types.PlaceholderAuthKey,
		PrivProtocol: types.PlaceholderPrivProtocol,
		PrivKey:      types.PlaceholderPrivKey,
	}

	data, err := Render(types.NewDocument([]types.Instance{v3}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	out := string(data)

	for _, key := range []string{"user:", "authProtocol:", "authKey:", "privProtocol:", "privKey:"} {
		if !strings.Contains(out, key) {
			t.Errorf("v3 instance missing %q:\n%s", key, out)
		}
	}
	if strings.Contains(out, "community_string:") {
		t.Errorf("v3 instance must not carry community_string:\n%s", out)
	}

	data, err = Render(types.NewDocument([]types.Instance{communityInstance()}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(string(data), "user:") {
		t.Errorf("v2 instance must not carry v3 auth fields:\n%s", data)
	}
}

func TestRenderMinCollectionInterval(t *testing.T) {
	inst := communityInstance()
	inst.MinCollectionInterval = 300

	data, err := Render(types.NewDocument([]types.Instance{inst}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(data), "min_collection_interval: 300") {
		t.Errorf("rendered YAML missing interval:\n%s", data)
	}
}

func TestRenderPreservesUnicode(t *testing.T) {
	inst := communityInstance()
	inst.Tags = []types.Tag{{Name: "location", Value: "Zürich"}}

	data, err := Render(types.NewDocument([]types.Instance{inst}))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(data), "location:Zürich") {
		t.Errorf("unicode not preserved unescaped:\n%s", data)
	}
}

func TestRenderEmptyInstanceList(t *testing.T) {
	data, err := Render(types.NewDocument(nil))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(string(data), "instances:") {
		t.Errorf("instances key missing:\n%s", data)
	}
}
