package vkctx

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// ExtensionInfo identifies a single instance or device extension.
type ExtensionInfo struct {
	Name        string
	SpecVersion uint32
}

// LayerInfo describes a layer together with the extensions that only become
// available when the layer is enabled.
type LayerInfo struct {
	Name                  string
	Description           string
	SpecVersion           uint32
	ImplementationVersion uint32
	Extensions            []ExtensionInfo
}

// HasLayer reports whether a layer with the given name is present.
func HasLayer(layers []LayerInfo, name string) bool {
	for _, l := range layers {
		if l.Name == name {
			return true
		}
	}
	return false
}

// HasExtension reports whether an extension with the given name is present.
func HasExtension(extensions []ExtensionInfo, name string) bool {
	for _, e := range extensions {
		if e.Name == name {
			return true
		}
	}
	return false
}

// SupportedLayers returns the names of every instance layer known to the
// loader. Vulkan must have been initialized first.
func SupportedLayers() ([]string, error) {
	layers, err := EnumerateInstanceLayersAndExtensions()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		names = append(names, l.Name)
	}
	return names, nil
}

// SupportedExtensions returns the names of every layer-independent instance
// extension. Vulkan must have been initialized first.
func SupportedExtensions() ([]string, error) {
	extensions, err := instanceExtensions("")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(extensions))
	for _, e := range extensions {
		names = append(names, e.Name)
	}
	return names, nil
}

// EnumerateInstanceLayersAndExtensions returns every instance layer along
// with the extension list each layer provides.
func EnumerateInstanceLayersAndExtensions() ([]LayerInfo, error) {
	var count uint32
	err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance layers: %w", err)
	}

	props := make([]vk.LayerProperties, count)
	err = vk.Error(vk.EnumerateInstanceLayerProperties(&count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance layers: %w", err)
	}

	layers := make([]LayerInfo, 0, count)
	for _, p := range props {
		p.Deref()
		layer := LayerInfo{
			Name:                  vk.ToString(p.LayerName[:]),
			Description:           vk.ToString(p.Description[:]),
			SpecVersion:           p.SpecVersion,
			ImplementationVersion: p.ImplementationVersion,
		}
		layer.Extensions, err = instanceExtensions(layer.Name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// instanceExtensions lists the instance extensions provided by the named
// layer, or the layer-independent set when layer is empty.
func instanceExtensions(layer string) ([]ExtensionInfo, error) {
	name := ""
	if layer != "" {
		name = safeString(layer)
	}

	var count uint32
	err := vk.Error(vk.EnumerateInstanceExtensionProperties(name, &count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance extensions: %w", err)
	}

	props := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateInstanceExtensionProperties(name, &count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating instance extensions: %w", err)
	}

	return extensionInfos(props), nil
}

// EnumerateDeviceLayersAndExtensions returns every device layer of this
// physical device along with the extension list each layer provides.
func (p *PhysicalDevice) EnumerateDeviceLayersAndExtensions() ([]LayerInfo, error) {
	var count uint32
	err := vk.Error(vk.EnumerateDeviceLayerProperties(p.VKPhysicalDevice, &count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating device layers: %w", err)
	}

	props := make([]vk.LayerProperties, count)
	err = vk.Error(vk.EnumerateDeviceLayerProperties(p.VKPhysicalDevice, &count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating device layers: %w", err)
	}

	layers := make([]LayerInfo, 0, count)
	for _, lp := range props {
		lp.Deref()
		layer := LayerInfo{
			Name:                  vk.ToString(lp.LayerName[:]),
			Description:           vk.ToString(lp.Description[:]),
			SpecVersion:           lp.SpecVersion,
			ImplementationVersion: lp.ImplementationVersion,
		}
		layer.Extensions, err = p.deviceExtensions(layer.Name)
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	return layers, nil
}

// SupportedExtensions returns the layer-independent device extensions of
// this physical device.
func (p *PhysicalDevice) SupportedExtensions() ([]ExtensionInfo, error) {
	return p.deviceExtensions("")
}

func (p *PhysicalDevice) deviceExtensions(layer string) ([]ExtensionInfo, error) {
	name := ""
	if layer != "" {
		name = safeString(layer)
	}

	var count uint32
	err := vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, name, &count, nil))
	if err != nil {
		return nil, fmt.Errorf("enumerating device extensions: %w", err)
	}

	props := make([]vk.ExtensionProperties, count)
	err = vk.Error(vk.EnumerateDeviceExtensionProperties(p.VKPhysicalDevice, name, &count, props))
	if err != nil {
		return nil, fmt.Errorf("enumerating device extensions: %w", err)
	}

	return extensionInfos(props), nil
}

func extensionInfos(props []vk.ExtensionProperties) []ExtensionInfo {
	extensions := make([]ExtensionInfo, 0, len(props))
	for _, ep := range props {
		ep.Deref()
		extensions = append(extensions, ExtensionInfo{
			Name:        vk.ToString(ep.ExtensionName[:]),
			SpecVersion: ep.SpecVersion,
		})
	}
	return extensions
}
